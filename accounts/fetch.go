package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/sodaplabs/sodap-go/network"
)

// FetchStore reads and decodes the store account at addr.
func FetchStore(ctx context.Context, chain network.ChainService, addr solana.PublicKey) (*Store, error) {
	data, err := chain.AccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeStore(data)
}

// FetchEscrow reads and decodes the escrow account at addr.
func FetchEscrow(ctx context.Context, chain network.ChainService, addr solana.PublicKey) (*Escrow, error) {
	data, err := chain.AccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeEscrow(data)
}

// FetchProduct reads and decodes the product account at addr.
func FetchProduct(ctx context.Context, chain network.ChainService, addr solana.PublicKey) (*Product, error) {
	data, err := chain.AccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeProduct(data)
}

// FetchLoyaltyMint reads and decodes the loyalty mint account at addr.
func FetchLoyaltyMint(ctx context.Context, chain network.ChainService, addr solana.PublicKey) (*LoyaltyMint, error) {
	data, err := chain.AccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeLoyaltyMint(data)
}

// FetchReceipt reads and decodes the purchase receipt account at addr.
func FetchReceipt(ctx context.Context, chain network.ChainService, addr solana.PublicKey) (*Receipt, error) {
	data, err := chain.AccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	return DecodeReceipt(data)
}
