// Package randutil derives reproducible random streams from a single seed.
package randutil

import rand "math/rand/v2"

const golden = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand seeded from seed. Equal seeds give
// equal sequences.
func New(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(s), splitmix(s+golden)))
}

// Stream returns the n-th independent stream under seed, so concurrent
// workers can each draw their own sequence without sharing a source.
func Stream(seed int64, n int) *rand.Rand {
	return New(int64(splitmix(uint64(seed) ^ splitmix(uint64(n)+golden))))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	return x ^ x>>31
}
