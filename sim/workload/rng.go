package workload

import (
	"hash/fnv"
	"math/rand"
)

// Named random streams used by the generator. Each draws from its own source so that
// changing how bursts are sampled never shifts arrival times for the same seed.
const (
	StreamArrivals = "arrivals"
	StreamBursts   = "bursts"
)

// PartitionedRNG hands out deterministic, isolated *rand.Rand instances per stream.
// The seed for a stream is seed XOR fnv1a64(name).
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{seed: seed, streams: make(map[string]*rand.Rand)}
}

// ForStream returns the cached RNG for name, creating it on first use. Never nil.
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
