package auth

import "github.com/google/uuid"

// newOpaqueToken returns a single-use token for verification and reset
// flows. UUIDv4 gives 122 bits of randomness, which is enough for tokens
// that also carry a short TTL.
func newOpaqueToken() string {
	return uuid.New().String()
}
