// Package fixtures synthesizes randomized build, run, test, device and factory
// payloads for the faker API. Every call draws fresh values; nothing is cached
// between calls and no two calls are expected to agree.
package fixtures

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies uniformly distributed integers in [0, n).
//
// *rand.Rand from math/rand/v2 satisfies it, which lets tests pin a seed.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the process-wide pseudo-random source. It is safe for
// concurrent use.
func DefaultSource() Source { return globalSource{} }

// SeededSource returns a deterministic source safe for concurrent use. The
// sequence is only reproducible when draws are not interleaved.
func SeededSource(seed uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Generator builds fixtures from a random source, a clock and a set of count
// ranges.
type Generator struct {
	src    Source
	now    func() time.Time
	ranges Ranges
}

// Option customises a Generator.
type Option func(*Generator)

// WithSource replaces the random source.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithClock replaces the clock used as "now" for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRanges replaces the count ranges. Invalid ranges are normalised.
func WithRanges(r Ranges) Option {
	return func(g *Generator) {
		g.ranges = r.normalize()
	}
}

// New returns a Generator using the default source, the wall clock and
// DefaultRanges unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		src:    DefaultSource(),
		now:    time.Now,
		ranges: DefaultRanges(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ranges returns the count ranges in effect.
func (g *Generator) Ranges() Ranges {
	return g.ranges
}
