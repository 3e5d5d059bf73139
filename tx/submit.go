// Package tx submits SoDap transactions and tracks their lifecycle. A
// submission is signed through the wallet capability, broadcast once, and
// polled until the network reports a terminal state or the confirmation
// window closes.
package tx

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/network"
	"github.com/sodaplabs/sodap-go/wallet"
)

// ConfirmOptions bounds the confirmation polling loop.
type ConfirmOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultConfirmOptions returns the recommended confirmation window:
// 90 seconds total, polling every 2 seconds.
func DefaultConfirmOptions() ConfirmOptions {
	return ConfirmOptions{Timeout: 90 * time.Second, PollInterval: 2 * time.Second}
}

func (o ConfirmOptions) withDefaults() ConfirmOptions {
	def := DefaultConfirmOptions()
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = def.PollInterval
	}
	return o
}

// Submitter signs, broadcasts, and confirms transactions. Submissions are
// independent: order of confirmation is up to the network, never assumed
// from order of submission.
type Submitter struct {
	chain   network.ChainService
	wallet  wallet.Capability
	tracker *Tracker
}

// NewSubmitter creates a Submitter recording outcomes in tracker.
func NewSubmitter(chain network.ChainService, w wallet.Capability, tracker *Tracker) *Submitter {
	return &Submitter{chain: chain, wallet: w, tracker: tracker}
}

// Tracker exposes the status tracker for UI reads.
func (s *Submitter) Tracker() *Tracker { return s.tracker }

// SubmitAndConfirm assembles a transaction from instrs, signs it through the
// wallet, broadcasts it, and waits for a terminal outcome.
//
// Failures before broadcast (wallet disconnected, user declined, node
// rejected) return an error with a zero handle: no chain state was touched
// and nothing is tracked. After broadcast the returned handle always carries
// the signature; a failed or timed-out confirmation returns the handle
// alongside the error. ErrConfirmationTimeout means the outcome is unknown,
// not that the transaction failed — do not blindly resubmit.
func (s *Submitter) SubmitAndConfirm(ctx context.Context, instrs []solana.Instruction, opts ConfirmOptions) (Handle, error) {
	return s.SubmitAndConfirmSigned(ctx, instrs, nil, opts)
}

// SubmitAndConfirmSigned is SubmitAndConfirm with additional in-process
// keypairs that must co-sign, such as a freshly generated mint account. The
// extra signatures are applied first; the wallet signs last.
func (s *Submitter) SubmitAndConfirmSigned(ctx context.Context, instrs []solana.Instruction, signers []solana.PrivateKey, opts ConfirmOptions) (Handle, error) {
	if len(instrs) == 0 {
		return Handle{}, ErrNoInstructions
	}
	opts = opts.withDefaults()

	payer, ok := s.wallet.PublicKey()
	if !ok {
		return Handle{}, wallet.ErrNotConnected
	}

	blockhash, err := s.chain.LatestBlockhash(ctx)
	if err != nil {
		return Handle{}, err
	}

	unsigned, err := solana.NewTransaction(instrs, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return Handle{}, fmt.Errorf("tx: assemble transaction: %w", err)
	}

	if len(signers) > 0 {
		if _, err := unsigned.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
			for i := range signers {
				if key.Equals(signers[i].PublicKey()) {
					return &signers[i]
				}
			}
			return nil
		}); err != nil {
			return Handle{}, fmt.Errorf("tx: co-sign transaction: %w", err)
		}
	}

	// Last cancellable point. Once broadcast succeeds the transaction is
	// irrevocably in flight.
	signed, err := s.wallet.SignTransaction(ctx, unsigned)
	if err != nil {
		return Handle{}, err
	}

	sig, err := s.chain.SendTransaction(ctx, signed)
	if err != nil {
		return Handle{}, err
	}

	if err := s.tracker.Track(sig); err != nil {
		// A duplicate signature means a loop is already confirming it.
		h, _ := s.tracker.Status(sig)
		return h, err
	}

	return s.confirm(ctx, sig, opts)
}

// confirm polls the signature until terminal state or timeout. A timeout (or
// caller cancellation) marks the handle failed with ErrConfirmationTimeout;
// the transaction may still land later.
func (s *Submitter) confirm(ctx context.Context, sig solana.Signature, opts ConfirmOptions) (Handle, error) {
	deadline := time.NewTimer(opts.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cause := fmt.Errorf("%w: %w", ErrConfirmationTimeout, ctx.Err())
			return s.tracker.markFailed(sig, cause), cause
		case <-deadline.C:
			return s.tracker.markFailed(sig, ErrConfirmationTimeout), ErrConfirmationTimeout
		case <-ticker.C:
			status, err := s.chain.SignatureStatus(ctx, sig)
			if err != nil || status == nil {
				// Transient lookup failure or signature not visible yet.
				continue
			}
			if status.Err != nil {
				return s.tracker.markFailed(sig, status.Err), status.Err
			}
			if status.Confirmed {
				return s.tracker.markConfirmed(sig), nil
			}
		}
	}
}
