package pos

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/sodaplabs/sodap-go/instruction"
	"github.com/sodaplabs/sodap-go/ledger"
	"github.com/sodaplabs/sodap-go/pda"
	"github.com/sodaplabs/sodap-go/tx"
	"github.com/sodaplabs/sodap-go/wallet"
)

// RequestReturn files a local return request against a purchase. Nothing
// touches the chain until a merchant approves and issues the refund. Passing
// no items requests a return of the full purchase.
func (c *Coordinator) RequestReturn(purchaseID string, items []ledger.Item, reason string) (*ledger.ReturnRequest, error) {
	rec, err := c.ledger.Purchase(purchaseID)
	if err != nil {
		return nil, err
	}
	if rec.IsReturned {
		return nil, fmt.Errorf("%w: purchase %s", ledger.ErrAlreadyReturned, purchaseID)
	}
	if len(items) == 0 {
		items = rec.Items
	}

	req := &ledger.ReturnRequest{
		ID:         uuid.NewString(),
		PurchaseID: purchaseID,
		Items:      items,
		Reason:     reason,
		Status:     ledger.ReturnPending,
	}
	if err := c.ledger.PutReturnRequest(req); err != nil {
		return nil, err
	}
	c.log.Info("return requested", "purchase", purchaseID, "request", req.ID)
	return req, nil
}

// Refund pays a purchase back to the buyer from the store's escrow. The
// connected wallet must be the store owner.
//
// The escrow balance is checked before anything is signed: if it cannot cover
// the refund plus the transaction fee, ErrInsufficientFunds is returned and
// no signature is requested. After confirmation the purchase is flagged
// returned and any pending return requests for it are approved.
func (c *Coordinator) Refund(ctx context.Context, purchaseID string) (tx.Handle, error) {
	rec, err := c.ledger.Purchase(purchaseID)
	if err != nil {
		return tx.Handle{}, err
	}
	if rec.IsReturned {
		return tx.Handle{}, fmt.Errorf("%w: purchase %s", ledger.ErrAlreadyReturned, purchaseID)
	}

	prices := make([]uint64, len(rec.Items))
	quantities := make([]uint64, len(rec.Items))
	for i, item := range rec.Items {
		prices[i] = item.Price
		quantities[i] = item.Quantity
	}
	amount, err := instruction.CartTotal(prices, quantities)
	if err != nil {
		return tx.Handle{}, err
	}

	owner, ok := c.wallet.PublicKey()
	if !ok {
		return tx.Handle{}, wallet.ErrNotConnected
	}
	store, err := pda.ParseKey(rec.StoreID)
	if err != nil {
		return tx.Handle{}, err
	}
	buyer, err := pda.ParseKey(rec.BuyerAddress)
	if err != nil {
		return tx.Handle{}, err
	}
	escrow, _, err := pda.DeriveEscrowAddress(c.programID, store)
	if err != nil {
		return tx.Handle{}, err
	}

	balance, err := c.chain.Balance(ctx, escrow)
	if err != nil {
		return tx.Handle{}, err
	}
	// Subtract rather than add: amount+FeeEstimate can wrap for a record
	// priced near the u64 ceiling, which would wave the refund through.
	if balance < FeeEstimate || balance-FeeEstimate < amount {
		return tx.Handle{}, fmt.Errorf("%w: escrow holds %d lamports, refund needs %d plus %d fee",
			ErrInsufficientFunds, balance, amount, FeeEstimate)
	}

	instr, err := instruction.RefundFromEscrow(c.programID, instruction.RefundFromEscrowParams{
		Store:      store,
		StoreOwner: owner,
		Buyer:      buyer,
		Escrow:     escrow,
		Amount:     amount,
	})
	if err != nil {
		return tx.Handle{}, err
	}

	c.log.Info("submitting refund", "purchase", purchaseID, "amount_lamports", amount)

	handle, err := c.submitter.SubmitAndConfirm(ctx, []solana.Instruction{instr}, c.confirm)
	if err != nil {
		c.log.Error("refund failed", "purchase", purchaseID, "err", err)
		return handle, err
	}

	if err := c.ledger.MarkReturned(purchaseID); err != nil {
		c.log.Error("refund confirmed but purchase not flagged", "purchase", purchaseID, "err", err)
		return handle, err
	}
	c.approvePendingReturns(purchaseID, handle.Signature.String())

	c.log.Info("refund confirmed", "purchase", purchaseID, "signature", handle.Signature.String())
	return handle, nil
}

// approvePendingReturns marks every pending return request for a refunded
// purchase approved, attaching the refund signature. Best effort.
func (c *Coordinator) approvePendingReturns(purchaseID, refundSig string) {
	reqs, err := c.ledger.ReturnRequestsForPurchase(purchaseID)
	if err != nil {
		c.log.Warn("return requests not loaded after refund", "purchase", purchaseID, "err", err)
		return
	}
	for _, req := range reqs {
		if req.Status != ledger.ReturnPending {
			continue
		}
		if err := c.ledger.SetReturnStatus(req.ID, ledger.ReturnApproved, refundSig); err != nil {
			c.log.Warn("return request not approved", "request", req.ID, "err", err)
		}
	}
}
