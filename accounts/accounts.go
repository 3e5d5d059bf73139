// Package accounts decodes the SoDap program's on-chain account layouts into
// client-side views. Every account starts with Anchor's 8-byte type
// discriminator followed by borsh-encoded fields.
package accounts

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// discriminatorLen is the Anchor account type tag preceding the payload.
const discriminatorLen = 8

// Store is a store account: ownership, display metadata, loyalty policy, and
// lifecycle flags.
type Store struct {
	Owner         solana.PublicKey
	Name          string
	Description   string
	LogoURI       string
	LoyaltyConfig LoyaltyConfig
	IsActive      bool
	Revenue       uint64
	AdminRoles    []AdminRole
}

// LoyaltyConfig is the accrual policy embedded in the store account.
type LoyaltyConfig struct {
	PointsPerDollar uint64
	RedemptionRate  uint64
}

// AdminRoleType is the borsh enum tag of an admin role.
type AdminRoleType uint8

// Admin role variants in on-chain declaration order.
const (
	RoleOwner AdminRoleType = iota
	RoleManager
	RoleViewer
)

// AdminRole grants a pubkey a management role on a store. Registration seeds
// the list with the store authority as owner.
type AdminRole struct {
	AdminPubkey solana.PublicKey
	RoleType    AdminRoleType
}

// Escrow is the program-held balance accumulating buyer payments for one store.
type Escrow struct {
	Store   solana.PublicKey
	Balance uint64
}

// Product is a catalog entry. UUID is the raw product id; MetadataURI is a
// fixed-width, zero-padded field on chain.
type Product struct {
	UUID          [16]byte
	Price         uint64
	Stock         uint64
	TokenizedType uint8
	IsActive      uint8
	Padding       [6]byte
	MetadataURI   [128]byte
	Store         solana.PublicKey
	Authority     solana.PublicKey
}

// LoyaltyMint is the per-store loyalty tracking account. Mint is the SPL
// token mint created alongside it; Authority is its mint authority.
type LoyaltyMint struct {
	Store               solana.PublicKey
	Mint                solana.PublicKey
	Authority           solana.PublicKey
	PointsPerSol        uint64
	RedemptionRate      uint64
	TotalPointsIssued   uint64
	TotalPointsRedeemed uint64
	IsToken2022         bool
}

// Receipt is the on-chain purchase record written by purchase_cart. Distinct
// from the client's local purchase ledger.
type Receipt struct {
	ProductIDs []solana.PublicKey
	Quantities []uint64
	TotalPaid  uint64
	GasFee     uint64
	Store      solana.PublicKey
	Buyer      solana.PublicKey
	Timestamp  int64
}

// DecodeStore decodes a store account.
func DecodeStore(data []byte) (*Store, error) {
	var s Store
	if err := decodeInto(data, &s); err != nil {
		return nil, fmt.Errorf("%w: store: %w", ErrBadLayout, err)
	}
	return &s, nil
}

// DecodeEscrow decodes an escrow account.
func DecodeEscrow(data []byte) (*Escrow, error) {
	var e Escrow
	if err := decodeInto(data, &e); err != nil {
		return nil, fmt.Errorf("%w: escrow: %w", ErrBadLayout, err)
	}
	return &e, nil
}

// DecodeProduct decodes a product account.
func DecodeProduct(data []byte) (*Product, error) {
	var p Product
	if err := decodeProduct(data, &p); err != nil {
		return nil, fmt.Errorf("%w: product: %w", ErrBadLayout, err)
	}
	return &p, nil
}

// DecodeLoyaltyMint decodes a loyalty mint account.
func DecodeLoyaltyMint(data []byte) (*LoyaltyMint, error) {
	var m LoyaltyMint
	if err := decodeInto(data, &m); err != nil {
		return nil, fmt.Errorf("%w: loyalty mint: %w", ErrBadLayout, err)
	}
	return &m, nil
}

// DecodeReceipt decodes an on-chain purchase receipt.
func DecodeReceipt(data []byte) (*Receipt, error) {
	var r Receipt
	if err := decodeInto(data, &r); err != nil {
		return nil, fmt.Errorf("%w: receipt: %w", ErrBadLayout, err)
	}
	return &r, nil
}

func payload(data []byte) ([]byte, error) {
	if len(data) < discriminatorLen {
		return nil, ErrShortData
	}
	return data[discriminatorLen:], nil
}

func decodeInto(data []byte, v interface{}) error {
	body, err := payload(data)
	if err != nil {
		return err
	}
	return bin.NewBorshDecoder(body).Decode(v)
}

// decodeProduct reads the product layout field by field: the on-chain struct
// is a packed C layout with explicit alignment padding, not plain borsh.
func decodeProduct(data []byte, p *Product) error {
	body, err := payload(data)
	if err != nil {
		return err
	}
	dec := bin.NewBorshDecoder(body)

	if err := dec.Decode(&p.UUID); err != nil {
		return err
	}
	if err := dec.Decode(&p.Price); err != nil {
		return err
	}
	if err := dec.Decode(&p.Stock); err != nil {
		return err
	}
	if err := dec.Decode(&p.TokenizedType); err != nil {
		return err
	}
	if err := dec.Decode(&p.IsActive); err != nil {
		return err
	}
	if err := dec.Decode(&p.Padding); err != nil {
		return err
	}
	if err := dec.Decode(&p.MetadataURI); err != nil {
		return err
	}
	if err := dec.Decode(&p.Store); err != nil {
		return err
	}
	return dec.Decode(&p.Authority)
}

// MetadataURIString returns the product metadata URI with zero padding stripped.
func (p *Product) MetadataURIString() string {
	for i, b := range p.MetadataURI {
		if b == 0 {
			return string(p.MetadataURI[:i])
		}
	}
	return string(p.MetadataURI[:])
}

// Active reports whether the product is purchasable.
func (p *Product) Active() bool { return p.IsActive != 0 }
