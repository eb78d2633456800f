package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns a random hex string of the given byte
// length (so the returned string is twice as long), used for SSE session
// identifiers. Falls back to an all-zero ID only if the system CSPRNG is
// unavailable, which on every supported platform it is not.
func GenerateRandomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString(make([]byte, n))
	}
	return hex.EncodeToString(buf)
}
