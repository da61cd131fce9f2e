package core

import "math/rand"

// splitmix64 advances and mixes a 64-bit state. It is the standard seeding
// mixer for PRNGs and gives well-distributed streams from correlated inputs
// such as pixel coordinates.
func splitmix64(state uint64) uint64 {
	state += 0x9e3779b97f4a7c15
	z := state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// PixelSeed derives a deterministic RNG seed from pixel coordinates, the
// sample index and the global scene seed. Equal inputs always produce equal
// streams, so renders are reproducible regardless of worker scheduling.
func PixelSeed(x, y, sampleIndex int, sceneSeed uint64) uint64 {
	h := splitmix64(sceneSeed)
	h = splitmix64(h ^ uint64(x)<<1)
	h = splitmix64(h ^ uint64(y)<<33)
	h = splitmix64(h ^ uint64(sampleIndex))
	return h
}

// NewPixelSampler creates an independent sampler for one pixel sample,
// seeded deterministically from (x, y, sampleIndex, sceneSeed)
func NewPixelSampler(x, y, sampleIndex int, sceneSeed uint64) *RandomSampler {
	seed := PixelSeed(x, y, sampleIndex, sceneSeed)
	return NewRandomSampler(rand.New(rand.NewSource(int64(seed))))
}
