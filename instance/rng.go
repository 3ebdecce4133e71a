// SPDX-License-Identifier: MIT
// Package instance — deterministic random streams for generated instances.
//
// Same seed ⇒ identical instance across platforms. math/rand.Rand is not
// goroutine-safe; every Generate call owns its stream.
package instance

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 maps to defaultRNGSeed.
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id into an independent seed
// (SplitMix64 finalizer).
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// SeriesSeeds returns k seeds derived from base, one per instance of a
// generated series. Stream i always yields the same seed for the same base.
func SeriesSeeds(base int64, k int) []int64 {
	if k <= 0 {
		return nil
	}
	if base == 0 {
		base = defaultRNGSeed
	}
	out := make([]int64, k)
	var i int
	for i = 0; i < k; i++ {
		out[i] = deriveSeed(base, uint64(i))
	}

	return out
}
