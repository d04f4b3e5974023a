// Package token generates the opaque strings handed out as drop and
// public-share links.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// 16 random bytes = 128 bits of entropy, hex encoded to 32 characters.
const byteLen = 16

// New returns a fresh unguessable token. Uniqueness is still enforced by
// the storage layer; callers retry on collision.
func New() (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
