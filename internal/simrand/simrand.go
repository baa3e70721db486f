// Package simrand derives deterministic pseudo-random streams from
// identity tuples. All simulated accuracy, latency, and error-rate
// figures in the engine draw from these streams, so identical inputs
// always reproduce identical output with no ambient randomness.
package simrand

import (
	"hash/fnv"
	"math/rand"
)

// Seed hashes an identity tuple to an RNG seed. The tuple parts are
// separated by a NUL byte so ("ab","c") and ("a","bc") hash apart.
func Seed(parts ...string) int64 {
	h := fnv.New64a()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return int64(h.Sum64())
}

// Source returns a fresh stream seeded from the identity tuple.
func Source(parts ...string) *rand.Rand {
	return rand.New(rand.NewSource(Seed(parts...)))
}

// Unit returns a single value in [0, 1) derived from the identity tuple.
func Unit(parts ...string) float64 {
	return Source(parts...).Float64()
}
