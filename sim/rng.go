package sim

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/inference-sim/opsim/sim/variate"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical traces.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Stream Constants ===

const (
	// StreamInterarrival is the substream for time between consecutive arrivals.
	StreamInterarrival = "interarrival"

	// StreamService is the substream for per-customer service durations.
	StreamService = "service"
)

// DrawOrder is the declared order in which Run draws its substreams. Each
// stream is drawn in its entirety before the next one starts. Because every
// stream has its own derived seed, the order does not change any stream's
// values; it is declared so that new streams are appended, never interleaved.
var DrawOrder = []string{StreamInterarrival, StreamService}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated sources per named stream.
//
// Derivation formula: streamSeed = masterSeed XOR fnv1a64(streamName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]rand.Source
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]rand.Source),
	}
}

// ForStream returns the deterministically-seeded source for the named stream.
// The same name always returns the same source instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForStream(name string) rand.Source {
	if src, ok := p.streams[name]; ok {
		return src
	}
	src := variate.NewSource(int64(p.key) ^ fnv1a64(name))
	p.streams[name] = src
	return src
}

// Generator returns a variate generator bound to the named stream.
func (p *PartitionedRNG) Generator(name string) *variate.Generator {
	return variate.NewGenerator(p.ForStream(name))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
