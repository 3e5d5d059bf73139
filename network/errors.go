package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not reach the RPC node.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrSubmissionFailed indicates the RPC node rejected the transaction
	// outright; no chain state was changed.
	ErrSubmissionFailed = errors.New("network: transaction submission failed")

	// ErrAccountNotFound indicates the requested account does not exist on chain.
	ErrAccountNotFound = errors.New("network: account not found")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrTransactionFailed indicates a transaction reached the chain and failed there.
	ErrTransactionFailed = errors.New("network: transaction failed on chain")

	// ErrProgramFault indicates the SoDap program rejected an instruction
	// with one of its own error codes. Use errors.As with *ProgramError to
	// read the code.
	ErrProgramFault = errors.New("network: program error")
)
