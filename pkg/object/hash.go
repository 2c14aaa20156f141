package object

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// HashLen is the length of a hex-encoded digest.
const HashLen = 40

// NullHash is the all-zero sentinel digest. It never names a stored object:
// it stands for "no parent", "no head" and "nothing staged".
const NullHash Hash = "0000000000000000000000000000000000000000"

// HashBytes computes the SHA-1 of the concatenation of parts and returns it
// as a lowercase hex-encoded Hash.
func HashBytes(parts ...[]byte) Hash {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashStrings is HashBytes over string parts.
func HashStrings(parts ...string) Hash {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsNull reports whether h is empty or the NullHash sentinel.
func (h Hash) IsNull() bool {
	return h == "" || h == NullHash
}

// Valid reports whether h is a well-formed 40-character lowercase hex digest.
func (h Hash) Valid() bool {
	if len(h) != HashLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Short returns the first 8 characters of h, for display.
func (h Hash) Short() string {
	if len(h) > 8 {
		return string(h[:8])
	}
	return string(h)
}

// ParseHash trims surrounding whitespace and validates s as a digest.
func ParseHash(s string) (Hash, bool) {
	h := Hash(strings.TrimSpace(s))
	return h, h.Valid()
}
