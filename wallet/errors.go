package wallet

import "errors"

var (
	// ErrNotConnected indicates a signing operation was attempted before Connect.
	ErrNotConnected = errors.New("wallet: not connected")

	// ErrUserRejected indicates the user declined the signature request.
	// No chain state was touched; callers reset to idle without side effects.
	ErrUserRejected = errors.New("wallet: user rejected signature request")

	// ErrSigningFailed indicates the wallet could not produce a signature.
	ErrSigningFailed = errors.New("wallet: signing failed")

	// ErrDecryptionFailed indicates wrong password or corrupted keystore data.
	ErrDecryptionFailed = errors.New("wallet: keystore decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates key checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: key checksum mismatch")

	// ErrInvalidKeystore indicates the keystore blob is too short or malformed.
	ErrInvalidKeystore = errors.New("wallet: invalid keystore data")
)
