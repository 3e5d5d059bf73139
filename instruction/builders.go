package instruction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PurchaseCartParams carries the accounts and arguments for a purchase_cart
// instruction. ProductIDs and Quantities are parallel slices; TotalPaid is
// the escrowed payment in lamports.
//
// The loyalty accounts are optional. A zero value omits the account; the
// program still expects a slot for each, so omitted ones are encoded as the
// program id per Anchor's optional-account convention.
type PurchaseCartParams struct {
	Store      solana.PublicKey
	Receipt    solana.PublicKey
	Buyer      solana.PublicKey
	StoreOwner solana.PublicKey
	Escrow     solana.PublicKey

	LoyaltyMint   solana.PublicKey
	TokenMint     solana.PublicKey
	TokenAccount  solana.PublicKey
	MintAuthority solana.PublicKey

	ProductIDs []solana.PublicKey
	Quantities []uint64
	TotalPaid  uint64
}

type purchaseCartArgs struct {
	ProductIDs []solana.PublicKey
	Quantities []uint64
	TotalPaid  uint64
}

// PurchaseCart builds the purchase instruction that moves the cart total from
// the buyer into the store's escrow and initializes the receipt account.
func PurchaseCart(programID solana.PublicKey, p PurchaseCartParams) (*Instruction, error) {
	if err := validateCart(p.ProductIDs, p.Quantities); err != nil {
		return nil, err
	}
	tokenProgram := solana.PublicKey{}
	if !p.TokenMint.IsZero() {
		tokenProgram = solana.TokenProgramID
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.Receipt).WRITE(),
		solana.Meta(p.Buyer).WRITE().SIGNER(),
		solana.Meta(p.StoreOwner).WRITE(),
		solana.Meta(p.Escrow).WRITE(),
		optionalMeta(programID, solana.Meta(p.LoyaltyMint).WRITE()),
		optionalMeta(programID, solana.Meta(p.TokenMint).WRITE()),
		optionalMeta(programID, solana.Meta(p.TokenAccount).WRITE()),
		optionalMeta(programID, solana.Meta(p.MintAuthority).WRITE().SIGNER()),
		optionalMeta(programID, solana.Meta(tokenProgram)),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "purchase_cart", purchaseCartArgs{
		ProductIDs: p.ProductIDs,
		Quantities: p.Quantities,
		TotalPaid:  p.TotalPaid,
	})
}

// RefundFromEscrowParams carries the accounts and refund amount for a
// refund_from_escrow instruction. StoreOwner signs; Buyer receives.
type RefundFromEscrowParams struct {
	Store      solana.PublicKey
	StoreOwner solana.PublicKey
	Buyer      solana.PublicKey
	Escrow     solana.PublicKey
	Amount     uint64
}

type amountArgs struct {
	Amount uint64
}

// RefundFromEscrow builds the instruction returning escrowed funds to a buyer.
func RefundFromEscrow(programID solana.PublicKey, p RefundFromEscrowParams) (*Instruction, error) {
	if p.Amount == 0 {
		return nil, fmt.Errorf("%w: refund amount", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.StoreOwner).SIGNER(),
		solana.Meta(p.Buyer).WRITE(),
		solana.Meta(p.Escrow).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "refund_from_escrow", amountArgs{Amount: p.Amount})
}

// ReleaseEscrowParams carries the accounts and amount for a release_escrow
// instruction paying escrowed funds out to the store owner.
type ReleaseEscrowParams struct {
	Store      solana.PublicKey
	StoreOwner solana.PublicKey
	Escrow     solana.PublicKey
	Amount     uint64
}

// ReleaseEscrow builds the instruction releasing escrowed funds to the store owner.
func ReleaseEscrow(programID solana.PublicKey, p ReleaseEscrowParams) (*Instruction, error) {
	if p.Amount == 0 {
		return nil, fmt.Errorf("%w: release amount", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.StoreOwner).WRITE(),
		solana.Meta(p.Escrow).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "release_escrow", amountArgs{Amount: p.Amount})
}

// LoyaltyConfig is the accrual policy written to the store account at
// registration.
type LoyaltyConfig struct {
	PointsPerDollar uint64
	RedemptionRate  uint64
}

// RegisterStoreParams carries the accounts and metadata for register_store.
type RegisterStoreParams struct {
	Store     solana.PublicKey
	Authority solana.PublicKey
	Payer     solana.PublicKey

	Name        string
	Description string
	LogoURI     string
	Loyalty     LoyaltyConfig
}

type registerStoreArgs struct {
	Name        string
	Description string
	LogoURI     string
	Loyalty     LoyaltyConfig
}

// RegisterStore builds the instruction creating a store account for the authority.
func RegisterStore(programID solana.PublicKey, p RegisterStoreParams) (*Instruction, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: store name", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.Authority).SIGNER(),
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "register_store", registerStoreArgs{
		Name:        p.Name,
		Description: p.Description,
		LogoURI:     p.LogoURI,
		Loyalty:     p.Loyalty,
	})
}

// ProductAttribute is a free-form name/value pair attached to a product.
type ProductAttribute struct {
	Name  string
	Value string
}

// RegisterProductParams carries the accounts and product fields for
// register_product. Inventory is optional; nil leaves it untracked.
type RegisterProductParams struct {
	Payer solana.PublicKey

	ProductID   solana.PublicKey
	StoreID     solana.PublicKey
	Name        string
	Description string
	ImageURI    string
	Price       uint64
	Inventory   *uint64
	Attributes  []ProductAttribute
}

type registerProductArgs struct {
	ProductID   solana.PublicKey
	StoreID     solana.PublicKey
	Name        string
	Description string
	ImageURI    string
	Price       uint64
	Inventory   *uint64 `bin:"optional"`
	Attributes  []ProductAttribute
}

// RegisterProduct builds the instruction adding a product to a store's catalog.
func RegisterProduct(programID solana.PublicKey, p RegisterProductParams) (*Instruction, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: product name", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "register_product", registerProductArgs{
		ProductID:   p.ProductID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		ImageURI:    p.ImageURI,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Attributes:  p.Attributes,
	})
}

// InitializeLoyaltyMintParams carries the accounts and policy for
// initialize_loyalty_mint. TokenMint is a freshly generated mint account and
// must co-sign its creation; LoyaltyMint is the PDA tracking account.
type InitializeLoyaltyMintParams struct {
	Store       solana.PublicKey
	LoyaltyMint solana.PublicKey
	TokenMint   solana.PublicKey
	Payer       solana.PublicKey

	PointsPerSol   uint64
	RedemptionRate uint64
	UseToken2022   bool
}

type initializeLoyaltyMintArgs struct {
	PointsPerSol   uint64
	RedemptionRate uint64
	UseToken2022   bool
}

// InitializeLoyaltyMint builds the instruction creating a store's loyalty
// token mint and its tracking account.
func InitializeLoyaltyMint(programID solana.PublicKey, p InitializeLoyaltyMintParams) (*Instruction, error) {
	if p.TokenMint.IsZero() {
		return nil, fmt.Errorf("%w: token mint", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.LoyaltyMint).WRITE(),
		solana.Meta(p.TokenMint).WRITE().SIGNER(),
		solana.Meta(p.Payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}
	return newInstruction(programID, accounts, "initialize_loyalty_mint", initializeLoyaltyMintArgs{
		PointsPerSol:   p.PointsPerSol,
		RedemptionRate: p.RedemptionRate,
		UseToken2022:   p.UseToken2022,
	})
}

// MintLoyaltyPointsParams carries the accounts and purchase amount for
// mint_loyalty_points. The program converts the lamports spent into points
// itself using the stored accrual rate; MintAuthority must match the loyalty
// tracking account's authority and signs.
type MintLoyaltyPointsParams struct {
	Store         solana.PublicKey
	LoyaltyMint   solana.PublicKey
	TokenMint     solana.PublicKey
	TokenAccount  solana.PublicKey
	MintAuthority solana.PublicKey
	Recipient     solana.PublicKey
	Buyer         solana.PublicKey

	PurchaseLamports uint64
}

type mintLoyaltyArgs struct {
	PurchaseAmountLamports uint64
}

// MintLoyaltyPoints builds the instruction issuing loyalty points for a
// purchase into the buyer's token account.
func MintLoyaltyPoints(programID solana.PublicKey, p MintLoyaltyPointsParams) (*Instruction, error) {
	if p.PurchaseLamports == 0 {
		return nil, fmt.Errorf("%w: purchase amount", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.LoyaltyMint).WRITE(),
		solana.Meta(p.TokenMint).WRITE(),
		solana.Meta(p.TokenAccount).WRITE(),
		solana.Meta(p.MintAuthority).WRITE().SIGNER(),
		solana.Meta(p.Recipient),
		solana.Meta(p.Buyer),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "mint_loyalty_points", mintLoyaltyArgs{
		PurchaseAmountLamports: p.PurchaseLamports,
	})
}

// RedeemLoyaltyPointsParams carries the accounts and amount for
// redeem_loyalty_points. TokenAccount is the user's account points are burned
// from. Escrow is optional but required when RedeemForSol: the redeemed value
// is paid out of the store's escrow.
type RedeemLoyaltyPointsParams struct {
	Store        solana.PublicKey
	LoyaltyMint  solana.PublicKey
	TokenMint    solana.PublicKey
	TokenAccount solana.PublicKey
	User         solana.PublicKey
	Escrow       solana.PublicKey

	Points       uint64
	RedeemForSol bool
}

type redeemLoyaltyArgs struct {
	PointsToRedeem uint64
	RedeemForSol   bool
}

// RedeemLoyaltyPoints builds the instruction burning loyalty points from a
// user's token account, optionally paying SOL back from escrow.
func RedeemLoyaltyPoints(programID solana.PublicKey, p RedeemLoyaltyPointsParams) (*Instruction, error) {
	if p.Points == 0 {
		return nil, fmt.Errorf("%w: points to redeem", ErrMissingField)
	}
	if p.RedeemForSol && p.Escrow.IsZero() {
		return nil, fmt.Errorf("%w: escrow account", ErrMissingField)
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Store).WRITE(),
		solana.Meta(p.LoyaltyMint).WRITE(),
		solana.Meta(p.TokenMint).WRITE(),
		solana.Meta(p.TokenAccount).WRITE(),
		solana.Meta(p.User).SIGNER(),
		optionalMeta(programID, solana.Meta(p.Escrow).WRITE()),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SystemProgramID),
	}
	return newInstruction(programID, accounts, "redeem_loyalty_points", redeemLoyaltyArgs{
		PointsToRedeem: p.Points,
		RedeemForSol:   p.RedeemForSol,
	})
}

// optionalMeta encodes an Anchor optional account: when the key is absent
// the slot carries the program id, unwritable and unsigned, so the accounts
// that follow keep their positions.
func optionalMeta(programID solana.PublicKey, m *solana.AccountMeta) *solana.AccountMeta {
	if m.PublicKey.IsZero() {
		return solana.Meta(programID)
	}
	return m
}

// validateCart enforces the cart shape the program will accept: parallel
// non-empty id/quantity slices, every quantity at least 1, and at most
// MaxCartProducts line items.
func validateCart(ids []solana.PublicKey, quantities []uint64) error {
	if len(ids) == 0 && len(quantities) == 0 {
		return ErrEmptyCart
	}
	if len(ids) != len(quantities) {
		return fmt.Errorf("%w: %d product ids vs %d quantities", ErrInvalidCart, len(ids), len(quantities))
	}
	if len(ids) > MaxCartProducts {
		return fmt.Errorf("%w: %d products exceeds limit of %d", ErrInvalidCart, len(ids), MaxCartProducts)
	}
	for i, q := range quantities {
		if q == 0 {
			return fmt.Errorf("%w: quantity for product %d is zero", ErrInvalidCart, i)
		}
	}
	return nil
}
