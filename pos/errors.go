package pos

import "errors"

var (
	// ErrCartEmpty indicates checkout was attempted with no items in the cart.
	ErrCartEmpty = errors.New("pos: cart is empty")

	// ErrNoStoreSelected indicates no store is selected for the session.
	ErrNoStoreSelected = errors.New("pos: no store selected")

	// ErrCheckoutInFlight indicates a checkout is already running.
	ErrCheckoutInFlight = errors.New("pos: checkout already in flight")

	// ErrInsufficientFunds indicates the escrow cannot cover a payout plus
	// the transaction fee.
	ErrInsufficientFunds = errors.New("pos: insufficient escrow funds")

	// ErrInvalidQuantity indicates a cart mutation with a zero quantity where
	// one is required.
	ErrInvalidQuantity = errors.New("pos: quantity must be at least 1")
)
