// Package pda derives the program-owned account addresses used by the SoDap
// program. All derivations are pure functions of their seed inputs: the same
// owner, store, or product id always yields the same address. No network
// access is required.
//
// Seed layout mirrors the on-chain program:
//
//	store        = ["store", owner]
//	escrow       = ["escrow", store]
//	loyalty mint = ["loyalty_mint", store]
//	product      = ["product", store, uuid bytes]
//	receipt      = ["purchase", store, buyer]
package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed prefixes understood by the on-chain program.
const (
	seedStore       = "store"
	seedEscrow      = "escrow"
	seedLoyaltyMint = "loyalty_mint"
	seedProduct     = "product"
	seedReceipt     = "purchase"
)

// DefaultProgramID is the deployed SoDap program.
var DefaultProgramID = solana.MustPublicKeyFromBase58("4eLJ3QGiNrPN6UUr2fNxq6tUZqFdBMVpXkL2MhsKNriv")

// ParseKey decodes a base58 public key string.
func ParseKey(s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return key, nil
}

// DeriveStoreAddress returns the store account for the given owner.
func DeriveStoreAddress(programID, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{[]byte(seedStore), owner.Bytes()})
}

// DeriveEscrowAddress returns the escrow account holding a store's buyer payments.
func DeriveEscrowAddress(programID, store solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{[]byte(seedEscrow), store.Bytes()})
}

// DeriveLoyaltyMintAddress returns the loyalty point mint for a store.
func DeriveLoyaltyMintAddress(programID, store solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{[]byte(seedLoyaltyMint), store.Bytes()})
}

// DeriveProductAddress returns the product account for a store and product id.
// The product id must be a UUID string; its 16 raw bytes participate in the
// seeds, so the textual form (case, hyphens) does not affect the address.
func DeriveProductAddress(programID, store solana.PublicKey, productID string) (solana.PublicKey, uint8, error) {
	idBytes, err := UUIDToBytes(productID)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return derive(programID, [][]byte{[]byte(seedProduct), store.Bytes(), idBytes[:]})
}

// DeriveReceiptAddress returns the on-chain purchase receipt account for a
// store and buyer pair.
func DeriveReceiptAddress(programID, store, buyer solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{[]byte(seedReceipt), store.Bytes(), buyer.Bytes()})
}

func derive(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return addr, bump, nil
}
