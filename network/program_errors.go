package network

import "fmt"

// SoDap program error codes. Anchor numbers custom errors from 6000 in
// declaration order.
const (
	CodeUnauthorized              = 6000
	CodeInsufficientPayment       = 6001
	CodeInvalidCart               = 6002
	CodeProductNotFound           = 6003
	CodeInsufficientStock         = 6004
	CodeArithmeticError           = 6005
	CodeInsufficientEscrowBalance = 6006
	CodeInvalidMint               = 6007
	CodeInsufficientLoyaltyPoints = 6008
	CodeInvalidRedemption         = 6009
)

// programErrorMessages maps every SoDap error code to its user-facing
// message. Unknown codes fall back to a generic rendering; matching is
// always by code, never by message text.
var programErrorMessages = map[uint32]string{
	CodeUnauthorized:              "unauthorized access",
	CodeInsufficientPayment:       "insufficient payment amount",
	CodeInvalidCart:               "invalid cart data",
	CodeProductNotFound:           "product not found",
	CodeInsufficientStock:         "insufficient stock",
	CodeArithmeticError:           "arithmetic error",
	CodeInsufficientEscrowBalance: "insufficient escrow balance",
	CodeInvalidMint:               "invalid mint",
	CodeInsufficientLoyaltyPoints: "insufficient loyalty points",
	CodeInvalidRedemption:         "invalid redemption",
}

// ProgramError is a SoDap program rejection with its original code preserved.
type ProgramError struct {
	Code uint32
}

func (e *ProgramError) Error() string {
	if msg, ok := programErrorMessages[e.Code]; ok {
		return fmt.Sprintf("network: program error %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("network: program error %d", e.Code)
}

// Unwrap makes errors.Is(err, ErrProgramFault) hold for every program error.
func (e *ProgramError) Unwrap() error { return ErrProgramFault }

// parseTransactionErr converts the JSON-decoded transaction error value
// returned by the RPC node into a typed error. Instruction errors carrying a
// custom program code become *ProgramError; everything else wraps
// ErrTransactionFailed with the raw value for diagnostics.
func parseTransactionErr(v interface{}) error {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]interface{}); ok {
		if ie, ok := m["InstructionError"].([]interface{}); ok && len(ie) == 2 {
			if detail, ok := ie[1].(map[string]interface{}); ok {
				if code, ok := detail["Custom"].(float64); ok {
					return &ProgramError{Code: uint32(code)}
				}
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrTransactionFailed, v)
}
