// Package digest centralises the hash function used for stored token
// digests, vote signatures and the receipt hash chain.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes.
const Size = 32

// Sum returns the blake3-256 digest of the concatenated parts.
func Sum(parts ...[]byte) []byte {
	h := blake3.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)[:Size]
}

// Token returns the hex digest of a bearer secret. Only this value is persisted.
func Token(secret string) string {
	sum := blake3.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Keyed returns a keyed blake3 MAC. The key must be exactly 32 bytes.
func Keyed(key []byte, parts ...[]byte) ([]byte, error) {
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, fmt.Errorf("keyed digest: %w", err)
	}
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum(nil)[:Size], nil
}
