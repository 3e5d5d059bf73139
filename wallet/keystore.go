package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for keystore encryption.
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // 64 MB
	argon2Parallelism = 4
	argon2KeyLen      = 32

	// Encryption format sizes.
	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// EncryptKey encrypts a private key with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, key||checksum)
//
// The checksum is SHA256(key)[:4] for verifying correct decryption.
func EncryptKey(key solana.PrivateKey, password string) ([]byte, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKeystore)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: generate salt: %w", err)
	}

	aead, err := newAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: generate nonce: %w", err)
	}

	checksum := sha256.Sum256(key)
	plaintext := append(append([]byte{}, key...), checksum[:checksumLen]...)

	out := make([]byte, 0, saltLen+nonceLen+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// DecryptKey reverses EncryptKey. Wrong passwords and tampered data report
// ErrDecryptionFailed; a checksum mismatch after successful decryption
// reports ErrChecksumMismatch.
func DecryptKey(data []byte, password string) (solana.PrivateKey, error) {
	if len(data) < saltLen+nonceLen+checksumLen {
		return nil, ErrInvalidKeystore
	}

	salt := data[:saltLen]
	nonce := data[saltLen : saltLen+nonceLen]
	ciphertext := data[saltLen+nonceLen:]

	aead, err := newAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) <= checksumLen {
		return nil, ErrInvalidKeystore
	}

	key := solana.PrivateKey(plaintext[:len(plaintext)-checksumLen])
	checksum := sha256.Sum256(key)
	for i := 0; i < checksumLen; i++ {
		if plaintext[len(key)+i] != checksum[i] {
			return nil, ErrChecksumMismatch
		}
	}
	return key, nil
}

// SaveKeystore encrypts the key and writes it to path with 0600 permissions,
// creating the parent directory if needed.
func SaveKeystore(path string, key solana.PrivateKey, password string) error {
	encrypted, err := EncryptKey(key, password)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("wallet: create keystore directory: %w", err)
	}
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("wallet: write keystore: %w", err)
	}
	return nil
}

// LoadKeystore reads and decrypts a keystore written by SaveKeystore.
func LoadKeystore(path, password string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}
	return DecryptKey(data, password)
}

func newAEAD(password string, salt []byte) (cipher.AEAD, error) {
	derived := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("wallet: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: create GCM: %w", err)
	}
	return aead, nil
}
