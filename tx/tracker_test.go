package tx

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sigN(n byte) solana.Signature {
	var sig solana.Signature
	sig[0] = n
	return sig
}

func TestTracker_TrackAndStatus(t *testing.T) {
	tr := NewTracker()
	sig := sigN(1)

	_, ok := tr.Status(sig)
	assert.False(t, ok)

	require.NoError(t, tr.Track(sig))

	h, ok := tr.Status(sig)
	require.True(t, ok)
	assert.Equal(t, sig, h.Signature)
	assert.Equal(t, StatusPending, h.Status)
	assert.NoError(t, h.Err)
}

func TestTracker_DuplicateTrack(t *testing.T) {
	tr := NewTracker()
	sig := sigN(2)

	require.NoError(t, tr.Track(sig))
	assert.ErrorIs(t, tr.Track(sig), ErrAlreadyTracked)
}

func TestTracker_ConfirmIsTerminal(t *testing.T) {
	tr := NewTracker()
	sig := sigN(3)
	require.NoError(t, tr.Track(sig))

	h := tr.markConfirmed(sig)
	assert.Equal(t, StatusConfirmed, h.Status)

	// No transition out of a terminal state.
	h = tr.markFailed(sig, errors.New("late failure"))
	assert.Equal(t, StatusConfirmed, h.Status)
	assert.NoError(t, h.Err)
}

func TestTracker_FailIsTerminal(t *testing.T) {
	tr := NewTracker()
	sig := sigN(4)
	require.NoError(t, tr.Track(sig))

	cause := errors.New("boom")
	h := tr.markFailed(sig, cause)
	assert.Equal(t, StatusFailed, h.Status)
	assert.Equal(t, cause, h.Err)

	h = tr.markConfirmed(sig)
	assert.Equal(t, StatusFailed, h.Status)
}

func TestTracker_IdempotentReads(t *testing.T) {
	tr := NewTracker()
	sig := sigN(5)
	require.NoError(t, tr.Track(sig))
	tr.markConfirmed(sig)

	first, ok := tr.Status(sig)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := tr.Status(sig)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "confirmed", StatusConfirmed.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusConfirmed.Terminal())
	assert.True(t, StatusFailed.Terminal())
}
