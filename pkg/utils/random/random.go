package random

import (
	"crypto/rand"
	"math"
	"math/big"
	mrand "math/rand"
	"time"
)

// Seed returns a positive seed for a reproducible shuffle. It falls back to
// the clock if the system source fails.
func Seed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil || n.Int64() == 0 {
		return time.Now().UnixNano()
	}
	return n.Int64()
}

// New returns a generator for seed, drawing a fresh seed when seed is zero.
// The seed actually used is returned so the run can be replayed.
func New(seed int64) (*mrand.Rand, int64) {
	if seed == 0 {
		seed = Seed()
	}
	return mrand.New(mrand.NewSource(seed)), seed
}
