package instruction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolToLamports(t *testing.T) {
	tests := []struct {
		name string
		sol  float64
		want uint64
	}{
		{"zero", 0, 0},
		{"one sol", 1, 1_000_000_000},
		{"tenth", 0.1, 100_000_000},
		{"smallest unit", 0.000000001, 1},
		{"rounds half up", 0.0000000015, 2},
		{"rounds down below half", 0.0000000014, 1},
		{"large", 1000, 1_000_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SolToLamports(tt.sol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSolToLamports_Invalid(t *testing.T) {
	for _, sol := range []float64{-0.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SolToLamports(sol)
		assert.Error(t, err, "sol=%v", sol)
	}

	_, err := SolToLamports(1e60)
	assert.ErrorIs(t, err, ErrPriceOverflow)
}

func TestLamportsToSol(t *testing.T) {
	assert.Equal(t, 0.1, LamportsToSol(100_000_000))
	assert.Equal(t, 1.0, LamportsToSol(1_000_000_000))
	assert.Equal(t, 0.0, LamportsToSol(0))
}

func TestCartTotal(t *testing.T) {
	total, err := CartTotal([]uint64{100, 250}, []uint64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(950), total)
}

func TestCartTotal_Empty(t *testing.T) {
	total, err := CartTotal(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCartTotal_LengthMismatch(t *testing.T) {
	_, err := CartTotal([]uint64{100}, []uint64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestCartTotal_Overflow(t *testing.T) {
	t.Run("line item wraps", func(t *testing.T) {
		_, err := CartTotal([]uint64{math.MaxUint64}, []uint64{2})
		assert.ErrorIs(t, err, ErrPriceOverflow)
	})

	t.Run("running total wraps", func(t *testing.T) {
		_, err := CartTotal([]uint64{math.MaxUint64, 1}, []uint64{1, 1})
		assert.ErrorIs(t, err, ErrPriceOverflow)
	})
}
