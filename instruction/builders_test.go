package instruction

import (
	"crypto/sha256"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testProgram = solana.MustPublicKeyFromBase58("4eLJ3QGiNrPN6UUr2fNxq6tUZqFdBMVpXkL2MhsKNriv")
	testStore   = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testBuyer   = solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
)

func purchaseParams(ids []solana.PublicKey, qtys []uint64) PurchaseCartParams {
	return PurchaseCartParams{
		Store:      testStore,
		Receipt:    testBuyer,
		Buyer:      testBuyer,
		StoreOwner: testStore,
		Escrow:     testStore,
		ProductIDs: ids,
		Quantities: qtys,
		TotalPaid:  100_000_000,
	}
}

func TestPurchaseCart(t *testing.T) {
	ix, err := PurchaseCart(testProgram, purchaseParams(
		[]solana.PublicKey{testBuyer, testStore},
		[]uint64{1, 2},
	))
	require.NoError(t, err)

	assert.Equal(t, testProgram, ix.ProgramID())

	accounts := ix.Accounts()
	require.Len(t, accounts, 11)

	// Buyer is the only signer and sits third; the system program closes the list.
	assert.True(t, accounts[2].IsSigner)
	assert.True(t, accounts[2].IsWritable)
	for i, meta := range accounts {
		if i != 2 {
			assert.False(t, meta.IsSigner, "account %d must not sign", i)
		}
	}
	assert.Equal(t, solana.SystemProgramID, accounts[10].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)

	want := sha256.Sum256([]byte("global:purchase_cart"))
	assert.Equal(t, want[:8], data[:8])

	// Args: vec lengths as u32 LE, then 2×32-byte ids, 2×u64 quantities, u64 total.
	assert.Equal(t, []byte{2, 0, 0, 0}, data[8:12])
	assert.Equal(t, testBuyer.Bytes(), data[12:44])
	assert.Equal(t, testStore.Bytes(), data[44:76])
	assert.Equal(t, []byte{2, 0, 0, 0}, data[76:80])
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, data[80:88])
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, data[88:96])
	assert.Equal(t, []byte{0x00, 0xe1, 0xf5, 0x05, 0, 0, 0, 0}, data[96:104])
	assert.Len(t, data, 104)
}

func TestPurchaseCart_OmittedOptionals(t *testing.T) {
	ix, err := PurchaseCart(testProgram, purchaseParams(
		[]solana.PublicKey{testBuyer},
		[]uint64{1},
	))
	require.NoError(t, err)

	// Slots 5 through 9 hold the five loyalty optionals. When none are
	// passed, each slot carries the program id so the system program still
	// lands in the final position instead of shifting into a loyalty slot.
	accounts := ix.Accounts()
	require.Len(t, accounts, 11)
	for i := 5; i <= 9; i++ {
		assert.Equal(t, testProgram, accounts[i].PublicKey, "slot %d", i)
		assert.False(t, accounts[i].IsWritable, "slot %d", i)
		assert.False(t, accounts[i].IsSigner, "slot %d", i)
	}
	assert.Equal(t, solana.SystemProgramID, accounts[10].PublicKey)
}

func TestPurchaseCart_LoyaltyMintOnly(t *testing.T) {
	loyaltyMint := solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	p := purchaseParams([]solana.PublicKey{testBuyer}, []uint64{1})
	p.LoyaltyMint = loyaltyMint

	ix, err := PurchaseCart(testProgram, p)
	require.NoError(t, err)

	// The loyalty tracking PDA is passed alone: it takes slot 5 writable,
	// the remaining optionals including the token program stay placeholders.
	accounts := ix.Accounts()
	assert.Equal(t, loyaltyMint, accounts[5].PublicKey)
	assert.True(t, accounts[5].IsWritable)
	for i := 6; i <= 9; i++ {
		assert.Equal(t, testProgram, accounts[i].PublicKey, "slot %d", i)
	}
	assert.Equal(t, solana.SystemProgramID, accounts[10].PublicKey)
}

func TestPurchaseCart_TokenAccountsPresent(t *testing.T) {
	p := purchaseParams([]solana.PublicKey{testBuyer}, []uint64{1})
	p.LoyaltyMint = testStore
	p.TokenMint = testBuyer
	p.TokenAccount = testBuyer
	p.MintAuthority = testStore

	ix, err := PurchaseCart(testProgram, p)
	require.NoError(t, err)

	accounts := ix.Accounts()
	assert.Equal(t, solana.TokenProgramID, accounts[9].PublicKey)
	assert.True(t, accounts[8].IsSigner, "mint authority signs")
	assert.Equal(t, solana.SystemProgramID, accounts[10].PublicKey)
}

func TestPurchaseCart_EmptyCart(t *testing.T) {
	_, err := PurchaseCart(testProgram, purchaseParams(nil, nil))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPurchaseCart_LengthMismatch(t *testing.T) {
	_, err := PurchaseCart(testProgram, purchaseParams(
		[]solana.PublicKey{testBuyer},
		[]uint64{1, 2},
	))
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestPurchaseCart_ZeroQuantity(t *testing.T) {
	_, err := PurchaseCart(testProgram, purchaseParams(
		[]solana.PublicKey{testBuyer},
		[]uint64{0},
	))
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestPurchaseCart_TooManyProducts(t *testing.T) {
	ids := make([]solana.PublicKey, MaxCartProducts+1)
	qtys := make([]uint64, MaxCartProducts+1)
	for i := range qtys {
		qtys[i] = 1
	}
	_, err := PurchaseCart(testProgram, purchaseParams(ids, qtys))
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestRefundFromEscrow(t *testing.T) {
	ix, err := RefundFromEscrow(testProgram, RefundFromEscrowParams{
		Store:      testStore,
		StoreOwner: testStore,
		Buyer:      testBuyer,
		Escrow:     testStore,
		Amount:     42,
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 5)

	// The store owner authorizes the refund; the buyer only receives funds.
	assert.True(t, accounts[1].IsSigner)
	assert.False(t, accounts[1].IsWritable)
	assert.True(t, accounts[2].IsWritable)
	assert.False(t, accounts[2].IsSigner)

	data, err := ix.Data()
	require.NoError(t, err)
	want := sha256.Sum256([]byte("global:refund_from_escrow"))
	assert.Equal(t, want[:8], data[:8])
	assert.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0}, data[8:])
}

func TestRefundFromEscrow_ZeroAmount(t *testing.T) {
	_, err := RefundFromEscrow(testProgram, RefundFromEscrowParams{
		Store: testStore, StoreOwner: testStore, Buyer: testBuyer, Escrow: testStore,
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestReleaseEscrow(t *testing.T) {
	ix, err := ReleaseEscrow(testProgram, ReleaseEscrowParams{
		Store:      testStore,
		StoreOwner: testBuyer,
		Escrow:     testStore,
		Amount:     7,
	})
	require.NoError(t, err)

	require.Len(t, ix.Accounts(), 4)
	data, err := ix.Data()
	require.NoError(t, err)
	want := sha256.Sum256([]byte("global:release_escrow"))
	assert.Equal(t, want[:8], data[:8])
}

func TestRegisterStore(t *testing.T) {
	ix, err := RegisterStore(testProgram, RegisterStoreParams{
		Store:       testStore,
		Authority:   testBuyer,
		Payer:       testBuyer,
		Name:        "Corner Shop",
		Description: "groceries",
		LogoURI:     "https://example.com/logo.png",
		Loyalty:     LoyaltyConfig{PointsPerDollar: 10, RedemptionRate: 100},
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.True(t, accounts[1].IsSigner)
	assert.True(t, accounts[2].IsSigner)

	data, err := ix.Data()
	require.NoError(t, err)

	// Strings are borsh-encoded as u32 length + UTF-8 bytes.
	assert.Equal(t, []byte{11, 0, 0, 0}, data[8:12])
	assert.Equal(t, "Corner Shop", string(data[12:23]))

	// The loyalty config closes the payload as two u64s.
	require.Len(t, data, 84)
	assert.Equal(t, []byte{10, 0, 0, 0, 0, 0, 0, 0}, data[68:76])
	assert.Equal(t, []byte{100, 0, 0, 0, 0, 0, 0, 0}, data[76:84])
}

func TestRegisterStore_MissingName(t *testing.T) {
	_, err := RegisterStore(testProgram, RegisterStoreParams{Store: testStore})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRegisterProduct(t *testing.T) {
	inventory := uint64(25)
	ix, err := RegisterProduct(testProgram, RegisterProductParams{
		Payer:       testBuyer,
		ProductID:   testStore,
		StoreID:     testStore,
		Name:        "Coffee",
		Description: "whole beans",
		ImageURI:    "ipfs://abc",
		Price:       250_000_000,
		Inventory:   &inventory,
		Attributes:  []ProductAttribute{{Name: "roast", Value: "dark"}},
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].IsSigner)

	data, err := ix.Data()
	require.NoError(t, err)
	want := sha256.Sum256([]byte("global:register_product"))
	assert.Equal(t, want[:8], data[:8])
	assert.Greater(t, len(data), 8+32+32)
}

func TestMintLoyaltyPoints(t *testing.T) {
	ix, err := MintLoyaltyPoints(testProgram, MintLoyaltyPointsParams{
		Store:            testStore,
		LoyaltyMint:      testStore,
		TokenMint:        testBuyer,
		TokenAccount:     testBuyer,
		MintAuthority:    testBuyer,
		Recipient:        testBuyer,
		Buyer:            testBuyer,
		PurchaseLamports: 2_000_000_000,
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 9)
	assert.True(t, accounts[4].IsSigner, "mint authority signs")
	assert.False(t, accounts[5].IsWritable, "recipient is read-only")
	assert.False(t, accounts[6].IsWritable, "buyer is read-only")
	assert.Equal(t, solana.TokenProgramID, accounts[7].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[8].PublicKey)

	// The single argument is the lamports spent; the program derives the
	// point count from the stored accrual rate.
	data, err := ix.Data()
	require.NoError(t, err)
	want := sha256.Sum256([]byte("global:mint_loyalty_points"))
	assert.Equal(t, want[:8], data[:8])
	assert.Equal(t, []byte{0x00, 0x94, 0x35, 0x77, 0, 0, 0, 0}, data[8:])
}

func TestRedeemLoyaltyPoints(t *testing.T) {
	ix, err := RedeemLoyaltyPoints(testProgram, RedeemLoyaltyPointsParams{
		Store:        testStore,
		LoyaltyMint:  testStore,
		TokenMint:    testBuyer,
		TokenAccount: testBuyer,
		User:         testBuyer,
		Escrow:       testStore,
		Points:       100,
		RedeemForSol: true,
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 8)
	assert.True(t, accounts[4].IsSigner, "user signs")
	assert.False(t, accounts[4].IsWritable)
	assert.Equal(t, testStore, accounts[5].PublicKey)
	assert.True(t, accounts[5].IsWritable, "escrow pays out the redemption")
	assert.Equal(t, solana.TokenProgramID, accounts[6].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[7].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	want := sha256.Sum256([]byte("global:redeem_loyalty_points"))
	assert.Equal(t, want[:8], data[:8])
	assert.Equal(t, []byte{100, 0, 0, 0, 0, 0, 0, 0, 1}, data[8:])
}

func TestRedeemLoyaltyPoints_NoEscrow(t *testing.T) {
	// Redeeming for perks rather than SOL: the escrow slot is optional and
	// carries the program id placeholder.
	ix, err := RedeemLoyaltyPoints(testProgram, RedeemLoyaltyPointsParams{
		Store:        testStore,
		LoyaltyMint:  testStore,
		TokenMint:    testBuyer,
		TokenAccount: testBuyer,
		User:         testBuyer,
		Points:       25,
	})
	require.NoError(t, err)
	assert.Equal(t, testProgram, ix.Accounts()[5].PublicKey)

	// Redeeming for SOL without an escrow account cannot be built.
	_, err = RedeemLoyaltyPoints(testProgram, RedeemLoyaltyPointsParams{
		Store:        testStore,
		LoyaltyMint:  testStore,
		TokenMint:    testBuyer,
		TokenAccount: testBuyer,
		User:         testBuyer,
		Points:       25,
		RedeemForSol: true,
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestInitializeLoyaltyMint(t *testing.T) {
	ix, err := InitializeLoyaltyMint(testProgram, InitializeLoyaltyMintParams{
		Store:          testStore,
		LoyaltyMint:    testStore,
		TokenMint:      testBuyer,
		Payer:          testBuyer,
		PointsPerSol:   5,
		RedemptionRate: 50,
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	assert.True(t, accounts[2].IsSigner, "the fresh token mint co-signs")
	assert.True(t, accounts[3].IsSigner, "payer signs")
	assert.Equal(t, solana.SystemProgramID, accounts[4].PublicKey)
	assert.Equal(t, solana.TokenProgramID, accounts[5].PublicKey)
	assert.Equal(t, solana.SysVarRentPubkey, accounts[6].PublicKey)

	// Args: points per sol, redemption rate, token-2022 flag.
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0}, data[8:16])
	assert.Equal(t, []byte{50, 0, 0, 0, 0, 0, 0, 0}, data[16:24])
	assert.Equal(t, byte(0), data[24])
	assert.Len(t, data, 25)
}

func TestMintLoyaltyPoints_ZeroAmount(t *testing.T) {
	_, err := MintLoyaltyPoints(testProgram, MintLoyaltyPointsParams{
		Store: testStore, LoyaltyMint: testStore, MintAuthority: testBuyer, TokenAccount: testBuyer,
	})
	assert.ErrorIs(t, err, ErrMissingField)
}
