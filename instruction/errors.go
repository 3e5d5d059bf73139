package instruction

import "errors"

var (
	// ErrEmptyCart indicates the cart has no items.
	ErrEmptyCart = errors.New("instruction: empty cart")

	// ErrInvalidCart indicates product ids and quantities do not line up,
	// a quantity is zero, or the cart exceeds the program's product limit.
	ErrInvalidCart = errors.New("instruction: invalid cart")

	// ErrPriceOverflow indicates a cart total or amount conversion would
	// exceed the uint64 lamport domain.
	ErrPriceOverflow = errors.New("instruction: price overflow")

	// ErrInvalidAmount indicates a display amount is negative or not finite.
	ErrInvalidAmount = errors.New("instruction: invalid amount")

	// ErrMissingField indicates a required builder argument is unset.
	ErrMissingField = errors.New("instruction: missing required field")
)
