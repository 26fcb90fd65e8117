// Package shared provides small helpers for random identifiers and for
// wiping sensitive buffers.
package shared

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns size random bytes encoded as hex, so the
// result is twice as long as size. Used for request ids.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes b. Passwords read from the terminal go through it
// once they have been hashed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
