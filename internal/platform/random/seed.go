// Package random supplies cryptographically sourced seeds and identifiers
// for the narrator engine's dice rollers and character records.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws eight bytes from crypto/rand and packs them into an int64
// suitable for seeding a dice roller.
func NewSeed() (int64, error) {
	var raw [8]byte
	if _, err := crand.Read(raw[:]); err != nil {
		return 0, fmt.Errorf("draw seed bytes: %w", err)
	}

	return int64(binary.BigEndian.Uint64(raw[:])), nil
}
