// Package pos coordinates the point-of-sale workflows: cart management,
// checkout, refunds, and the merchant-side administrative operations. It is
// the only package that touches chain state and the local ledger in the same
// operation, and it owns the ordering between them: chain confirmation first,
// local writes second.
package pos

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/accounts"
	"github.com/sodaplabs/sodap-go/ledger"
	"github.com/sodaplabs/sodap-go/network"
	"github.com/sodaplabs/sodap-go/pda"
	"github.com/sodaplabs/sodap-go/tx"
	"github.com/sodaplabs/sodap-go/wallet"
)

// FeeEstimate is the flat per-transaction fee assumed during pre-flight
// balance checks, in lamports.
const FeeEstimate = 5000

// Options tunes a Coordinator. Zero values fall back to defaults.
type Options struct {
	// ProgramID overrides the deployed SoDap program address.
	ProgramID solana.PublicKey

	// Confirm bounds transaction confirmation polling.
	Confirm tx.ConfirmOptions

	// Logger receives workflow logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Coordinator drives the purchase and refund workflows end to end.
type Coordinator struct {
	chain     network.ChainService
	wallet    wallet.Capability
	ledger    *ledger.Store
	submitter *tx.Submitter
	programID solana.PublicKey
	confirm   tx.ConfirmOptions
	log       *slog.Logger

	checkoutBusy atomic.Bool
	balances     balanceCache

	mintsMu sync.Mutex
	mints   map[solana.PublicKey]*accounts.LoyaltyMint
}

// New creates a Coordinator over the given chain, wallet, and local ledger.
func New(chain network.ChainService, w wallet.Capability, led *ledger.Store, opts Options) *Coordinator {
	if opts.ProgramID.IsZero() {
		opts.ProgramID = pda.DefaultProgramID
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Coordinator{
		chain:     chain,
		wallet:    w,
		ledger:    led,
		submitter: tx.NewSubmitter(chain, w, tx.NewTracker()),
		programID: opts.ProgramID,
		confirm:   opts.Confirm,
		log:       opts.Logger,
	}
}

// Tracker exposes transaction statuses for UI reads.
func (c *Coordinator) Tracker() *tx.Tracker { return c.submitter.Tracker() }

// ProgramID returns the program the coordinator targets.
func (c *Coordinator) ProgramID() solana.PublicKey { return c.programID }

// SelectStore records the store the session is shopping at. The cart is
// cleared when the selection changes: items are priced per store.
func (c *Coordinator) SelectStore(storeAddr string) error {
	if _, err := pda.ParseKey(storeAddr); err != nil {
		return err
	}
	current, err := c.ledger.SelectedStore()
	if err != nil {
		return err
	}
	if current == storeAddr {
		return nil
	}
	if err := c.ledger.ClearCart(); err != nil {
		return err
	}
	return c.ledger.SetSelectedStore(storeAddr)
}

// SelectedStore returns the session's store address, or "" when unset.
func (c *Coordinator) SelectedStore() (string, error) {
	return c.ledger.SelectedStore()
}

// loyaltyMint returns the store's loyalty tracking account and its PDA,
// cached after the first read. Callers only use the mint, authority, and
// token flavor, all of which are fixed at initialization.
func (c *Coordinator) loyaltyMint(ctx context.Context, store solana.PublicKey) (solana.PublicKey, *accounts.LoyaltyMint, error) {
	addr, _, err := pda.DeriveLoyaltyMintAddress(c.programID, store)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	c.mintsMu.Lock()
	lm, ok := c.mints[store]
	c.mintsMu.Unlock()
	if ok {
		return addr, lm, nil
	}

	lm, err = accounts.FetchLoyaltyMint(ctx, c.chain, addr)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	c.mintsMu.Lock()
	if c.mints == nil {
		c.mints = make(map[solana.PublicKey]*accounts.LoyaltyMint)
	}
	c.mints[store] = lm
	c.mintsMu.Unlock()
	return addr, lm, nil
}
