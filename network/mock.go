package network

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Mock is a test double for ChainService. All function fields must be set
// before the corresponding method is called.
type Mock struct {
	LatestBlockhashFn  func(ctx context.Context) (solana.Hash, error)
	SendTransactionFn  func(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SignatureStatusFn  func(ctx context.Context, sig solana.Signature) (*SignatureStatus, error)
	BalanceFn          func(ctx context.Context, account solana.PublicKey) (uint64, error)
	AccountDataFn      func(ctx context.Context, account solana.PublicKey) ([]byte, error)
	RecentSignaturesFn func(ctx context.Context, account solana.PublicKey, limit int) ([]solana.Signature, error)
}

var _ ChainService = (*Mock)(nil)

func (m *Mock) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return m.LatestBlockhashFn(ctx)
}
func (m *Mock) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	return m.SendTransactionFn(ctx, tx)
}
func (m *Mock) SignatureStatus(ctx context.Context, sig solana.Signature) (*SignatureStatus, error) {
	return m.SignatureStatusFn(ctx, sig)
}
func (m *Mock) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	return m.BalanceFn(ctx, account)
}
func (m *Mock) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	return m.AccountDataFn(ctx, account)
}
func (m *Mock) RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]solana.Signature, error) {
	return m.RecentSignaturesFn(ctx, account, limit)
}
