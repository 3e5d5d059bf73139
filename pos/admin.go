package pos

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/instruction"
	"github.com/sodaplabs/sodap-go/pda"
	"github.com/sodaplabs/sodap-go/tx"
	"github.com/sodaplabs/sodap-go/wallet"
)

// Merchant-side operations. The connected wallet is the store authority for
// all of these; the store address is always derived from it, never trusted
// from input.

// RegisterStore creates the store account owned by the connected wallet and
// returns its address alongside the transaction handle. The loyalty config
// is written to the store at creation; a zero config disables accrual until
// the store updates it.
func (c *Coordinator) RegisterStore(ctx context.Context, name, description, logoURI string, loyalty instruction.LoyaltyConfig) (tx.Handle, solana.PublicKey, error) {
	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, solana.PublicKey{}, wallet.ErrNotConnected
	}
	store, _, err := pda.DeriveStoreAddress(c.programID, owner)
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}

	instr, err := instruction.RegisterStore(c.programID, instruction.RegisterStoreParams{
		Store:       store,
		Authority:   owner,
		Payer:       owner,
		Name:        name,
		Description: description,
		LogoURI:     logoURI,
		Loyalty:     loyalty,
	})
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		return handle, store, err
	}
	c.log.Info("store registered", "store", store.String(), "name", name)
	return handle, store, nil
}

// ProductInput describes a product to add to the connected wallet's store.
// ID must be a UUID string; Inventory nil leaves stock untracked.
type ProductInput struct {
	ID          string
	Name        string
	Description string
	ImageURI    string
	Price       uint64 // lamports
	Inventory   *uint64
	Attributes  []instruction.ProductAttribute
}

// RegisterProduct adds a product to the connected wallet's store catalog and
// returns the product account address.
func (c *Coordinator) RegisterProduct(ctx context.Context, p ProductInput) (tx.Handle, solana.PublicKey, error) {
	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, solana.PublicKey{}, wallet.ErrNotConnected
	}
	store, _, err := pda.DeriveStoreAddress(c.programID, owner)
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}
	product, _, err := pda.DeriveProductAddress(c.programID, store, p.ID)
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}

	instr, err := instruction.RegisterProduct(c.programID, instruction.RegisterProductParams{
		Payer:       owner,
		ProductID:   product,
		StoreID:     store,
		Name:        p.Name,
		Description: p.Description,
		ImageURI:    p.ImageURI,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Attributes:  p.Attributes,
	})
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		return handle, product, err
	}
	c.log.Info("product registered", "product", product.String(), "name", p.Name)
	return handle, product, nil
}

// InitializeLoyaltyMint creates the loyalty token mint for the connected
// wallet's store and returns the new mint address. The mint account is a
// fresh keypair generated here; it co-signs its own creation and is
// discarded afterwards, leaving the program's tracking PDA as the authority
// record. pointsPerSol and redemptionRate set the store's accrual policy.
func (c *Coordinator) InitializeLoyaltyMint(ctx context.Context, pointsPerSol, redemptionRate uint64) (tx.Handle, solana.PublicKey, error) {
	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, solana.PublicKey{}, wallet.ErrNotConnected
	}
	store, _, err := pda.DeriveStoreAddress(c.programID, owner)
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}
	loyaltyMint, _, err := pda.DeriveLoyaltyMintAddress(c.programID, store)
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, fmt.Errorf("pos: generate mint key: %w", err)
	}
	tokenMint := mintKey.PublicKey()

	instr, err := instruction.InitializeLoyaltyMint(c.programID, instruction.InitializeLoyaltyMintParams{
		Store:          store,
		LoyaltyMint:    loyaltyMint,
		TokenMint:      tokenMint,
		Payer:          owner,
		PointsPerSol:   pointsPerSol,
		RedemptionRate: redemptionRate,
	})
	if err != nil {
		return tx.Handle{}, solana.PublicKey{}, err
	}

	handle, err := c.submitter.SubmitAndConfirmSigned(ctx, []solana.Instruction{instr}, []solana.PrivateKey{mintKey}, c.confirm)
	if err != nil {
		return handle, tokenMint, err
	}
	c.log.Info("loyalty mint initialized", "mint", tokenMint.String(), "points_per_sol", pointsPerSol)
	return handle, tokenMint, nil
}

// ReleaseEscrow pays escrowed funds out to the connected wallet's store
// owner. The program enforces the escrow balance; an overdraw fails on chain
// with the insufficient-balance program error.
func (c *Coordinator) ReleaseEscrow(ctx context.Context, amount uint64) (tx.Handle, error) {
	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, wallet.ErrNotConnected
	}
	store, _, err := pda.DeriveStoreAddress(c.programID, owner)
	if err != nil {
		return tx.Handle{}, err
	}
	escrow, _, err := pda.DeriveEscrowAddress(c.programID, store)
	if err != nil {
		return tx.Handle{}, err
	}

	instr, err := instruction.ReleaseEscrow(c.programID, instruction.ReleaseEscrowParams{
		Store:      store,
		StoreOwner: owner,
		Escrow:     escrow,
		Amount:     amount,
	})
	if err != nil {
		return tx.Handle{}, err
	}

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		c.log.Error("escrow release failed", "amount_lamports", amount, "err", err)
		return handle, err
	}
	c.log.Info("escrow released", "amount_lamports", amount, "signature", handle.Signature.String())
	return handle, nil
}

// RedeemLoyaltyPoints burns points from the connected wallet's loyalty token
// account at the selected store, redeeming them for SOL out of the store's
// escrow at the stored redemption rate.
func (c *Coordinator) RedeemLoyaltyPoints(ctx context.Context, points uint64) (tx.Handle, error) {
	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, wallet.ErrNotConnected
	}
	storeAddr, err := c.ledger.SelectedStore()
	if err != nil {
		return tx.Handle{}, err
	}
	if storeAddr == "" {
		return tx.Handle{}, ErrNoStoreSelected
	}
	store, err := pda.ParseKey(storeAddr)
	if err != nil {
		return tx.Handle{}, err
	}
	mintAddr, lm, err := c.loyaltyMint(ctx, store)
	if err != nil {
		return tx.Handle{}, err
	}
	tokenAccount, err := loyaltyTokenAccount(owner, lm.Mint, lm.IsToken2022)
	if err != nil {
		return tx.Handle{}, err
	}
	escrow, _, err := pda.DeriveEscrowAddress(c.programID, store)
	if err != nil {
		return tx.Handle{}, err
	}

	instr, err := instruction.RedeemLoyaltyPoints(c.programID, instruction.RedeemLoyaltyPointsParams{
		Store:        store,
		LoyaltyMint:  mintAddr,
		TokenMint:    lm.Mint,
		TokenAccount: tokenAccount,
		User:         owner,
		Escrow:       escrow,
		Points:       points,
		RedeemForSol: true,
	})
	if err != nil {
		return tx.Handle{}, err
	}

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		return handle, err
	}
	c.balances.invalidate()
	c.log.Info("loyalty points redeemed", "points", points, "signature", handle.Signature.String())
	return handle, nil
}
