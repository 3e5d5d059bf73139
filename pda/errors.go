package pda

import "errors"

var (
	// ErrInvalidKey indicates a key string failed base58 decoding.
	ErrInvalidKey = errors.New("pda: invalid key format")

	// ErrInvalidUUID indicates a product id is not a well-formed UUID.
	ErrInvalidUUID = errors.New("pda: invalid UUID format")

	// ErrDerivationFailed indicates no valid program address exists for the seeds.
	ErrDerivationFailed = errors.New("pda: address derivation failed")
)
