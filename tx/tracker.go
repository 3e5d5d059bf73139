package tx

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Status is the lifecycle state of a submitted transaction.
type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool { return s != StatusPending }

// Handle is the client-side view of one submitted transaction. A handle
// transitions exactly once from pending to a terminal state and is never
// reused across operations.
type Handle struct {
	Signature solana.Signature
	Status    Status
	Err       error // set when Status is StatusFailed
}

// Tracker is an in-memory map from signature to Handle, queryable by the UI
// without re-deriving state. Reads are safe under concurrent polling; writes
// are serialized by the single polling loop per signature.
type Tracker struct {
	mu      sync.RWMutex
	handles map[solana.Signature]*Handle
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{handles: make(map[solana.Signature]*Handle)}
}

// Track registers a pending entry for sig. It returns ErrAlreadyTracked if
// the signature is already known, which callers use to avoid starting a
// second polling loop.
func (t *Tracker) Track(sig solana.Signature) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.handles[sig]; ok {
		return ErrAlreadyTracked
	}
	t.handles[sig] = &Handle{Signature: sig, Status: StatusPending}
	return nil
}

// Status returns a copy of the handle for sig. Reading never mutates state:
// repeated reads after a terminal state return identical values.
func (t *Tracker) Status(sig solana.Signature) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handles[sig]
	if !ok {
		return Handle{}, false
	}
	return *h, true
}

// markConfirmed moves a pending handle to confirmed. Terminal handles are
// left untouched.
func (t *Tracker) markConfirmed(sig solana.Signature) Handle {
	return t.transition(sig, StatusConfirmed, nil)
}

// markFailed moves a pending handle to failed with the given cause.
func (t *Tracker) markFailed(sig solana.Signature, cause error) Handle {
	return t.transition(sig, StatusFailed, cause)
}

func (t *Tracker) transition(sig solana.Signature, status Status, cause error) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.handles[sig]
	if !ok {
		h = &Handle{Signature: sig, Status: StatusPending}
		t.handles[sig] = h
	}
	if h.Status.Terminal() {
		return *h
	}
	h.Status = status
	h.Err = cause
	return *h
}
