package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the field key from the configured secret.
// The derivation runs once per process, so the cost can afford to be high.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32 // 256 bit for AES-256
)

// ErrDecryption is returned for any malformed, truncated or tampered field.
// Callers must treat it as fatal for the operation in progress, never as an
// empty value.
var ErrDecryption = errors.New("field decryption failed")

// FieldCipher encrypts individual text fields for storage at rest.
// The stored form is "ivHex:cipherHex" with a fresh random IV per call.
// The cipher does not know which logical field it protects; callers encrypt
// every sensitive field before persistence and decrypt before returning data
// across the trust boundary.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher derives the AES-256-GCM key from the configured secret via
// Argon2id and keeps it for the lifetime of the process.
func NewFieldCipher(secret, salt string) (*FieldCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("field cipher: empty secret")
	}

	key := argon2.IDKey([]byte(secret), []byte(salt), argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &FieldCipher{aead: aead}, nil
}

// Encrypt returns the field in "ivHex:cipherHex" form. The IV is freshly
// random on every call; an empty plaintext is a valid input and round-trips.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	ciphertext := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Any format violation or authentication failure
// yields ErrDecryption; the reason is wrapped for logs but the sentinel is
// what callers branch on.
func (c *FieldCipher) Decrypt(field string) (string, error) {
	ivHex, cipherHex, found := strings.Cut(field, ":")
	if !found {
		return "", fmt.Errorf("%w: missing iv separator", ErrDecryption)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad iv encoding", ErrDecryption)
	}
	if len(iv) != c.aead.NonceSize() {
		return "", fmt.Errorf("%w: bad iv length", ErrDecryption)
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext encoding", ErrDecryption)
	}

	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	return string(plaintext), nil
}
