// Package auth issues and checks the admin API key that guards catalog writes.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix starts every generated key.
const KeyPrefix = "catalog_"

// ErrInvalidKey is returned when a key does not match the configured hash.
var ErrInvalidKey = errors.New("invalid API key")

// GenerateKey creates a new API key and its bcrypt hash. The raw key is
// 32 random bytes, base64url encoded, with KeyPrefix prepended.
func GenerateKey(cost int) (rawKey, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	rawKey = KeyPrefix + base64.RawURLEncoding.EncodeToString(b)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(rawKey), cost)
	if err != nil {
		return "", "", fmt.Errorf("hashing API key: %w", err)
	}
	return rawKey, string(hashBytes), nil
}

// Verify reports ErrInvalidKey unless rawKey matches hash.
func Verify(hash, rawKey string) error {
	if rawKey == "" || hash == "" {
		return ErrInvalidKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey)); err != nil {
		return ErrInvalidKey
	}
	return nil
}
