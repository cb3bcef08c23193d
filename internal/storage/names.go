package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomNameBytes is the number of random bytes used to build a
// file name (256 bits of entropy).
const RandomNameBytes = 32

// NameSource generates collision resistant file base names. It is
// injectable so that tests can produce predictable names.
type NameSource func() (string, error)

// RandomName returns a hex encoded name built from RandomNameBytes
// bytes read from crypto/rand.
func RandomName() (string, error) {
	buf := make([]byte, RandomNameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random name: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
