package pos

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/network"
	"github.com/sodaplabs/sodap-go/pda"
)

// tokenAmountOffset is where the u64 amount sits in an SPL token account.
const tokenAmountOffset = 64

// balanceTTL bounds how stale a cached loyalty balance may be. The cache is
// invalidated eagerly after any operation that changes balances.
const balanceTTL = 30 * time.Second

// loyaltyTokenAccount derives the associated token account holding an
// owner's loyalty points for a mint. The token program in the seeds must
// match the one the mint was created under.
func loyaltyTokenAccount(owner, mint solana.PublicKey, token2022 bool) (solana.PublicKey, error) {
	tokenProgram := solana.TokenProgramID
	if token2022 {
		tokenProgram = solana.Token2022ProgramID
	}
	addr, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %w", pda.ErrDerivationFailed, err)
	}
	return addr, nil
}

type balanceEntry struct {
	amount  uint64
	fetched time.Time
}

type balanceCache struct {
	mu      sync.Mutex
	entries map[solana.PublicKey]balanceEntry
}

func (b *balanceCache) get(account solana.PublicKey) (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[account]
	if !ok || time.Since(e.fetched) > balanceTTL {
		return 0, false
	}
	return e.amount, true
}

func (b *balanceCache) put(account solana.PublicKey, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries == nil {
		b.entries = make(map[solana.PublicKey]balanceEntry)
	}
	b.entries[account] = balanceEntry{amount: amount, fetched: time.Now()}
}

func (b *balanceCache) invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// LoyaltyBalance returns the owner's loyalty point balance at the selected
// store. A missing token account reads as zero: the buyer simply has no
// points yet. Reads are cached briefly; purchases and redemptions invalidate
// the cache.
func (c *Coordinator) LoyaltyBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	storeAddr, err := c.ledger.SelectedStore()
	if err != nil {
		return 0, err
	}
	if storeAddr == "" {
		return 0, ErrNoStoreSelected
	}
	store, err := pda.ParseKey(storeAddr)
	if err != nil {
		return 0, err
	}
	_, lm, err := c.loyaltyMint(ctx, store)
	if err != nil {
		if errors.Is(err, network.ErrAccountNotFound) {
			// The store never initialized a loyalty mint.
			return 0, nil
		}
		return 0, err
	}
	account, err := loyaltyTokenAccount(owner, lm.Mint, lm.IsToken2022)
	if err != nil {
		return 0, err
	}

	if amount, ok := c.balances.get(account); ok {
		return amount, nil
	}

	data, err := c.chain.AccountData(ctx, account)
	if err != nil {
		if errors.Is(err, network.ErrAccountNotFound) {
			c.balances.put(account, 0)
			return 0, nil
		}
		return 0, err
	}
	if len(data) < tokenAmountOffset+8 {
		return 0, fmt.Errorf("%w: token account %d bytes", network.ErrInvalidResponse, len(data))
	}

	amount := binary.LittleEndian.Uint64(data[tokenAmountOffset:])
	c.balances.put(account, amount)
	return amount, nil
}
