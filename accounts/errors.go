package accounts

import "errors"

var (
	// ErrShortData indicates the account data ends before the layout does.
	ErrShortData = errors.New("accounts: account data too short")

	// ErrBadLayout indicates the account bytes do not decode as the expected layout.
	ErrBadLayout = errors.New("accounts: unexpected account layout")
)
