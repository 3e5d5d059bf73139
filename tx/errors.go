package tx

import "errors"

var (
	// ErrConfirmationTimeout indicates no terminal state was observed within
	// the confirmation window. The outcome is ambiguous: the transaction may
	// still land. Callers must check transaction history before any retry
	// that could double-spend.
	ErrConfirmationTimeout = errors.New("tx: confirmation timeout")

	// ErrAlreadyTracked indicates a polling loop is already running for the
	// signature.
	ErrAlreadyTracked = errors.New("tx: signature already tracked")

	// ErrNoInstructions indicates SubmitAndConfirm was called with nothing to send.
	ErrNoInstructions = errors.New("tx: no instructions")
)
