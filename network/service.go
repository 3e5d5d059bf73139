// Package network talks to a Solana RPC node on behalf of the SoDap client.
// ChainService is the boundary interface the rest of the SDK depends on;
// Client implements it over a real node and Mock stands in for tests.
package network

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// ChainService is the primary interface for chain interaction.
type ChainService interface {
	// LatestBlockhash returns a recent blockhash for transaction assembly.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// SendTransaction broadcasts a fully signed transaction and returns its
	// signature. A rejection maps to ErrSubmissionFailed (or ErrProgramFault
	// when the program itself refused during preflight).
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// SignatureStatus returns the confirmation status of a transaction, or
	// (nil, nil) while the network does not know the signature yet.
	SignatureStatus(ctx context.Context, sig solana.Signature) (*SignatureStatus, error)

	// Balance returns the lamport balance of an account.
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)

	// AccountData returns the raw data bytes of an account, or
	// ErrAccountNotFound if it does not exist.
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)

	// RecentSignatures lists the most recent transaction signatures touching
	// an account, newest first. Used to check history before retrying an
	// ambiguous submission.
	RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]solana.Signature, error)
}

// SignatureStatus is the confirmation state of a submitted transaction.
type SignatureStatus struct {
	// Slot the transaction was processed in.
	Slot uint64

	// Confirmed is true once the cluster reached confirmed or finalized
	// commitment for the transaction.
	Confirmed bool

	// Err is non-nil if the transaction was processed but failed on chain.
	// Program rejections carry a *ProgramError in the chain.
	Err error
}
