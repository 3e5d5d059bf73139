package ledger

import "errors"

var (
	// ErrNotFound indicates no record exists under the given id.
	ErrNotFound = errors.New("ledger: record not found")

	// ErrAlreadyReturned indicates the purchase already has a completed return.
	ErrAlreadyReturned = errors.New("ledger: purchase already returned")

	// ErrDuplicateRecord indicates a record with the same id already exists.
	ErrDuplicateRecord = errors.New("ledger: duplicate record")

	// ErrInvalidRecord indicates a record is missing required fields.
	ErrInvalidRecord = errors.New("ledger: invalid record")
)
