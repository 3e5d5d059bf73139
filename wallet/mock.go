package wallet

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Mock is a test double for Capability. All function fields must be set
// before the corresponding method is called.
type Mock struct {
	ConnectFn         func(ctx context.Context) (solana.PublicKey, error)
	DisconnectFn      func()
	PublicKeyFn       func() (solana.PublicKey, bool)
	SignTransactionFn func(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

var _ Capability = (*Mock)(nil)

func (m *Mock) Connect(ctx context.Context) (solana.PublicKey, error) { return m.ConnectFn(ctx) }
func (m *Mock) Disconnect()                                           { m.DisconnectFn() }
func (m *Mock) PublicKey() (solana.PublicKey, bool)                   { return m.PublicKeyFn() }
func (m *Mock) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	return m.SignTransactionFn(ctx, tx)
}

// Rejecting returns a Mock that reports the given key as connected but
// declines every signature request, mimicking a user hitting "cancel" in
// their wallet.
func Rejecting(key solana.PublicKey) *Mock {
	return &Mock{
		ConnectFn:    func(context.Context) (solana.PublicKey, error) { return key, nil },
		DisconnectFn: func() {},
		PublicKeyFn:  func() (solana.PublicKey, bool) { return key, true },
		SignTransactionFn: func(context.Context, *solana.Transaction) (*solana.Transaction, error) {
			return nil, ErrUserRejected
		},
	}
}
