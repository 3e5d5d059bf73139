package pos

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/accounts"
	"github.com/sodaplabs/sodap-go/instruction"
	"github.com/sodaplabs/sodap-go/ledger"
	"github.com/sodaplabs/sodap-go/pda"
	"github.com/sodaplabs/sodap-go/tx"
	"github.com/sodaplabs/sodap-go/wallet"
)

// CheckoutResult reports a completed checkout: the transaction handle, the
// receipt account holding the on-chain record, and the local purchase record.
type CheckoutResult struct {
	Handle  tx.Handle
	Receipt solana.PublicKey
	Record  *ledger.PurchaseRecord
}

// Checkout purchases the current cart from the selected store.
//
// The cart and store selection are validated before anything touches the
// network: an empty cart or missing selection costs zero RPC calls. A local
// purchase record is written only after the transaction confirms; a failed or
// timed-out submission leaves the cart and ledger untouched, so retrying is
// always safe from the client's point of view.
func (c *Coordinator) Checkout(ctx context.Context) (*CheckoutResult, error) {
	if !c.checkoutBusy.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer c.checkoutBusy.Store(false)

	cart, err := c.ledger.LoadCart()
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	storeAddr, err := c.ledger.SelectedStore()
	if err != nil {
		return nil, err
	}
	if storeAddr == "" {
		return nil, ErrNoStoreSelected
	}
	store, err := pda.ParseKey(storeAddr)
	if err != nil {
		return nil, err
	}

	buyer, ok := c.wallet.PublicKey()
	if !ok {
		return nil, wallet.ErrNotConnected
	}

	prices := make([]uint64, len(cart))
	quantities := make([]uint64, len(cart))
	productIDs := make([]solana.PublicKey, len(cart))
	for i, entry := range cart {
		prices[i] = entry.Price
		quantities[i] = entry.Quantity
		productIDs[i], _, err = pda.DeriveProductAddress(c.programID, store, entry.ProductID)
		if err != nil {
			return nil, err
		}
	}
	total, err := instruction.CartTotal(prices, quantities)
	if err != nil {
		return nil, err
	}

	storeAcc, err := accounts.FetchStore(ctx, c.chain, store)
	if err != nil {
		return nil, err
	}
	escrow, _, err := pda.DeriveEscrowAddress(c.programID, store)
	if err != nil {
		return nil, err
	}
	receipt, _, err := pda.DeriveReceiptAddress(c.programID, store, buyer)
	if err != nil {
		return nil, err
	}
	loyaltyMint, _, err := pda.DeriveLoyaltyMintAddress(c.programID, store)
	if err != nil {
		return nil, err
	}

	// The loyalty tracking PDA rides along so the program can record the
	// purchase against it; the token-side optionals stay omitted and points
	// are minted in a follow-up transaction.
	instr, err := instruction.PurchaseCart(c.programID, instruction.PurchaseCartParams{
		Store:       store,
		Receipt:     receipt,
		Buyer:       buyer,
		StoreOwner:  storeAcc.Owner,
		Escrow:      escrow,
		LoyaltyMint: loyaltyMint,
		ProductIDs:  productIDs,
		Quantities:  quantities,
		TotalPaid:   total,
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("submitting purchase",
		"store", storeAddr,
		"buyer", buyer.String(),
		"items", len(cart),
		"total_lamports", total)

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		c.log.Error("purchase failed", "signature", handle.Signature.String(), "err", err)
		return &CheckoutResult{Handle: handle, Receipt: receipt}, err
	}

	record := &ledger.PurchaseRecord{
		ID:           handle.Signature.String(),
		StoreID:      storeAddr,
		BuyerAddress: buyer.String(),
		Items:        cartItems(cart),
		TotalAmount:  total,
		Timestamp:    time.Now().Unix(),

		TransactionSignature: handle.Signature.String(),
	}
	if err := c.ledger.PutPurchase(record); err != nil {
		// The purchase confirmed on chain; surface the bookkeeping failure
		// but report the transaction as succeeded.
		c.log.Error("purchase confirmed but local record failed", "signature", record.ID, "err", err)
		return &CheckoutResult{Handle: handle, Receipt: receipt, Record: record}, err
	}
	if err := c.ledger.ClearCart(); err != nil {
		c.log.Warn("cart not cleared after purchase", "err", err)
	}

	c.awardLoyalty(ctx, store, buyer, total)
	c.balances.invalidate()

	c.log.Info("purchase confirmed", "signature", record.ID, "receipt", receipt.String())
	return &CheckoutResult{Handle: handle, Receipt: receipt, Record: record}, nil
}

// awardLoyalty issues loyalty points for a confirmed purchase. The program
// computes the point count from the lamports spent and the store's accrual
// rate; purchases under one SOL earn nothing and skip the transaction.
// Points are a courtesy: failures are logged and never affect the purchase
// outcome.
func (c *Coordinator) awardLoyalty(ctx context.Context, store, buyer solana.PublicKey, totalLamports uint64) {
	if totalLamports/instruction.LamportsPerSol == 0 {
		return
	}

	mintAddr, lm, err := c.loyaltyMint(ctx, store)
	if err != nil {
		c.log.Warn("loyalty mint not available", "err", err)
		return
	}
	tokenAccount, err := loyaltyTokenAccount(buyer, lm.Mint, lm.IsToken2022)
	if err != nil {
		c.log.Warn("loyalty token account derivation failed", "err", err)
		return
	}

	instr, err := instruction.MintLoyaltyPoints(c.programID, instruction.MintLoyaltyPointsParams{
		Store:            store,
		LoyaltyMint:      mintAddr,
		TokenMint:        lm.Mint,
		TokenAccount:     tokenAccount,
		MintAuthority:    lm.Authority,
		Recipient:        buyer,
		Buyer:            buyer,
		PurchaseLamports: totalLamports,
	})
	if err != nil {
		c.log.Warn("loyalty instruction build failed", "err", err)
		return
	}

	if _, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm); err != nil {
		c.log.Warn("loyalty points not awarded", "purchase_lamports", totalLamports, "err", err)
		return
	}
	c.log.Info("loyalty points awarded", "purchase_lamports", totalLamports, "token_account", tokenAccount.String())
}

func cartItems(cart []ledger.CartEntry) []ledger.Item {
	items := make([]ledger.Item, len(cart))
	for i, entry := range cart {
		items[i] = ledger.Item{
			ProductID: entry.ProductID,
			Name:      entry.Name,
			Price:     entry.Price,
			Quantity:  entry.Quantity,
		}
	}
	return items
}
