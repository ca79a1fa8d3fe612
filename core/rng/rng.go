// core/rng/rng.go

// Deterministic substream derivation. Every (transcript, sample) unit of
// work draws from its own PCG source whose seed is a mix of the run seed,
// a stream tag, and the two indices. Output is therefore identical for a
// fixed run seed regardless of worker count or scheduling order.
package rng

import "golang.org/x/exp/rand"

// Tag separates the independent random streams of one run.
type Tag uint64

const (
	// TagCounts feeds the negative-binomial count draws.
	TagCounts Tag = 0x636f756e74 // "count"
	// TagReads feeds fragment placement, strand choice and error injection.
	TagReads Tag = 0x7265616473 // "reads"
)

// mix64 is the splitmix64 finalizer; a full-avalanche 64-bit mixer.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SeedFor derives the substream seed for (tag, transcript, sample) under
// the given run seed.
func SeedFor(run uint64, tag Tag, transcript, sample int) uint64 {
	s := mix64(run)
	s = mix64(s ^ uint64(tag))
	s = mix64(s ^ uint64(transcript))
	s = mix64(s ^ uint64(sample))
	return s
}

// Source returns an independent seedable source for one unit of work.
func Source(run uint64, tag Tag, transcript, sample int) rand.Source {
	return rand.NewSource(SeedFor(run, tag, transcript, sample))
}

// New returns a *rand.Rand over Source for callers that want the
// convenience methods (Intn, Float64, ...).
func New(run uint64, tag Tag, transcript, sample int) *rand.Rand {
	return rand.New(Source(run, tag, transcript, sample))
}
