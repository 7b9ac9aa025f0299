// Package rng provides the random source used by the scheduling engine.
//
// Every shuffle, weighted pick and interval jitter goes through a Source so
// that a session can be replayed exactly from a seed.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the engine depends on.
type Source interface {
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64

	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// New returns a PCG-backed Source for the given seed.
// A zero seed draws one from the wall clock.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle reorders items in place using src.
func Shuffle[T any](src Source, items []T) {
	src.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
