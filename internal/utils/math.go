package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
)

// RandomIndex returns a pseudo-random index in [0, n).
// Callers must ensure n > 0.
func RandomIndex(r *rand.Rand, n int) int {
	return r.IntN(n) //nolint:gosec // Deterministic replays only, production uses SecureIndex
}

// SecureRandomInt returns a random integer between min and max (inclusive) using crypto/rand
func SecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	n, err := crand.Int(crand.Reader, diff)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + min, nil
}

// SecureIndex returns a uniformly distributed index in [0, n) using crypto/rand
func SecureIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot pick from an empty range (n=%d)", n)
	}
	return SecureRandomInt(0, n-1)
}

// NewSeededRand returns a PCG-backed generator for reproducible draws.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
