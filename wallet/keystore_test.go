package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptKey_RoundTrip(t *testing.T) {
	key := newTestKey(t)

	encrypted, err := EncryptKey(key, "correct horse")
	require.NoError(t, err)
	assert.Greater(t, len(encrypted), saltLen+nonceLen)

	decrypted, err := DecryptKey(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, []byte(key), []byte(decrypted))
}

func TestDecryptKey_WrongPassword(t *testing.T) {
	key := newTestKey(t)
	encrypted, err := EncryptKey(key, "right")
	require.NoError(t, err)

	_, err = DecryptKey(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptKey_Tampered(t *testing.T) {
	key := newTestKey(t)
	encrypted, err := EncryptKey(key, "pw")
	require.NoError(t, err)

	encrypted[len(encrypted)-1] ^= 0xff
	_, err = DecryptKey(encrypted, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptKey_TooShort(t *testing.T) {
	_, err := DecryptKey([]byte{1, 2, 3}, "pw")
	assert.ErrorIs(t, err, ErrInvalidKeystore)
}

func TestEncryptKey_EmptyKey(t *testing.T) {
	_, err := EncryptKey(nil, "pw")
	assert.ErrorIs(t, err, ErrInvalidKeystore)
}

func TestSaveLoadKeystore(t *testing.T) {
	key := newTestKey(t)
	path := filepath.Join(t.TempDir(), "keys", "wallet.enc")

	require.NoError(t, SaveKeystore(path, key, "pw"))

	loaded, err := LoadKeystore(path, "pw")
	require.NoError(t, err)
	assert.Equal(t, []byte(key), []byte(loaded))

	_, err = LoadKeystore(path, "other")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestLoadKeystore_Missing(t *testing.T) {
	_, err := LoadKeystore(filepath.Join(t.TempDir(), "nope.enc"), "pw")
	assert.Error(t, err)
}

func TestEncryptKey_UniqueCiphertext(t *testing.T) {
	key := newTestKey(t)

	a, err := EncryptKey(key, "pw")
	require.NoError(t, err)
	b, err := EncryptKey(key, "pw")
	require.NoError(t, err)

	// Fresh salt and nonce every time.
	assert.NotEqual(t, a, b)
}
