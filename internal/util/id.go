package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a URL-safe hex string, used for request correlation ids.
// Entity ids are integers allocated by the stores and never come from here.
func NewID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
