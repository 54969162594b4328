package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// UniformValues generates n random values in range [0, 1).
func (r *RNG) UniformValues(n int) []float64 {
	out := make([]float64, n)
	r.FillUniform(out)
	return out
}

// Indices generates n distinct pseudo-random indices in [0, length), in
// ascending order, as the float64 values an interpreter would supply.
func (r *RNG) Indices(n, length int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm := r.rand.Perm(length)[:n]
	out := make([]float64, n)
	for i, p := range perm {
		out[i] = float64(p)
	}
	sort.Float64s(out)
	return out
}
