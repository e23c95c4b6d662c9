// internal/pin/hasher.go

// Package pin provides one-way hashing and verification of card PINs.
package pin

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash returns the SHA-256 digest of pin as a lowercase hex string.
// The digest is deterministic and unsalted, so the same PIN always yields
// the same stored hash across all cards.
func Hash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether pin hashes to storedDigest.
// The comparison is constant-time.
func Verify(pin, storedDigest string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(pin)), []byte(storedDigest)) == 1
}
