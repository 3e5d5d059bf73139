// Package wallet defines the signing capability boundary for the SoDap
// client. A Capability can produce a signature over a transaction without
// exposing the private key to the application; browser extensions, hardware
// wallets, and the file-backed LocalWallet all satisfy the same contract.
package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Capability is the boundary object that signs transactions. Implementations
// must be safe for use from a single coordinating goroutine; Connect is the
// only method that may prompt the user.
type Capability interface {
	// Connect establishes the wallet session and returns the public key.
	// May block indefinitely on user approval; honor ctx cancellation.
	Connect(ctx context.Context) (solana.PublicKey, error)

	// Disconnect tears down the session. Idempotent.
	Disconnect()

	// PublicKey returns the connected key, or false if not connected.
	PublicKey() (solana.PublicKey, bool)

	// SignTransaction signs tx with the wallet's key and returns it. A user
	// declining maps to ErrUserRejected; no broadcast has happened either way.
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

// LocalWallet is a Capability backed by a private key held in process,
// typically loaded from an encrypted keystore file. It never prompts.
type LocalWallet struct {
	mu        sync.Mutex
	key       solana.PrivateKey
	connected bool
}

var _ Capability = (*LocalWallet)(nil)

// NewLocalWallet wraps a private key in a Capability. The wallet starts
// disconnected.
func NewLocalWallet(key solana.PrivateKey) *LocalWallet {
	return &LocalWallet{key: key}
}

// Connect marks the wallet connected and returns its public key.
func (w *LocalWallet) Connect(_ context.Context) (solana.PublicKey, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return w.key.PublicKey(), nil
}

// Disconnect marks the wallet disconnected.
func (w *LocalWallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
}

// PublicKey returns the wallet's key while connected.
func (w *LocalWallet) PublicKey() (solana.PublicKey, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return solana.PublicKey{}, false
	}
	return w.key.PublicKey(), true
}

// SignTransaction signs tx in place with the wallet's key. Signature slots
// for other required signers are left untouched, so co-signed transactions
// keep the signatures applied before the wallet's.
func (w *LocalWallet) SignTransaction(_ context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return nil, ErrNotConnected
	}

	pub := w.key.PublicKey()
	_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(pub) {
			return &w.key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return tx, nil
}
