package instruction

import (
	"fmt"
	"math"
)

// LamportsPerSol is the scale factor between display SOL and integer lamports.
const LamportsPerSol = 1_000_000_000

// SolToLamports converts a display amount in SOL to integer lamports,
// rounding half up. Negative, NaN, infinite, or out-of-range amounts are
// rejected; amounts are never silently truncated or wrapped.
func SolToLamports(sol float64) (uint64, error) {
	if math.IsNaN(sol) || math.IsInf(sol, 0) || sol < 0 {
		return 0, fmt.Errorf("%w: %v SOL", ErrInvalidAmount, sol)
	}
	scaled := math.Floor(sol*LamportsPerSol + 0.5)
	if scaled >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: %v SOL exceeds lamport range", ErrPriceOverflow, sol)
	}
	return uint64(scaled), nil
}

// LamportsToSol converts integer lamports to a display amount in SOL.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSol
}

// CartTotal computes Σ(price×quantity) over parallel slices with checked
// arithmetic. It reports ErrInvalidCart on mismatched lengths and
// ErrPriceOverflow if any product or the running total would wrap.
func CartTotal(prices, quantities []uint64) (uint64, error) {
	if len(prices) != len(quantities) {
		return 0, fmt.Errorf("%w: %d prices vs %d quantities", ErrInvalidCart, len(prices), len(quantities))
	}
	var total uint64
	for i, price := range prices {
		line, err := checkedMul(price, quantities[i])
		if err != nil {
			return 0, err
		}
		total, err = checkedAdd(total, line)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("%w: %d × %d", ErrPriceOverflow, a, b)
	}
	return a * b, nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrPriceOverflow, a, b)
	}
	return a + b, nil
}
