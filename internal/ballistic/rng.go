package ballistic

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
)

// RandomSource draws the target positions of a reachability sweep.
// Float64 must return values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// DefaultRNG returns a fresh sweep source keyed from the OS entropy pool.
// Two calls never share a target sequence.
func DefaultRNG() RandomSource {
	var key [32]byte
	cryptorand.Read(key[:])
	return rand.New(rand.NewChaCha8(key))
}

// NewSeededRNG returns a source that replays the same targets for the same
// seed, so a sweep can be reproduced from its request.
func NewSeededRNG(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}

// uniform maps one draw onto [lo, hi).
func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
