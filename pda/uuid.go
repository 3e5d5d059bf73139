package pda

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDToBytes converts a UUID string to its 16 raw bytes: hyphens are
// stripped and the remaining 32 hex digits are paired into bytes. Hex case
// is ignored.
func UUIDToBytes(s string) ([16]byte, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return [16]byte{}, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return [16]byte(id), nil
}

// BytesToUUID is the inverse of UUIDToBytes: it formats 16 bytes as a
// lowercase hyphenated UUID string (hyphens at offsets 8, 12, 16 and 20).
func BytesToUUID(b []byte) (string, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: need 16 bytes, got %d", ErrInvalidUUID, len(b))
	}
	return id.String(), nil
}
