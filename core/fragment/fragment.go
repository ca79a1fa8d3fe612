// core/fragment/fragment.go
package fragment

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fragment is one placement on a transcript: [Start, Start+Length).
type Fragment struct {
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (f Fragment) End() int { return f.Start + f.Length }

// Config holds the fragmentation parameters.
type Config struct {
	ReadLen int     // configured read length
	Mean    float64 // fragment length mean
	SD      float64 // fragment length standard deviation
	Paired  bool
}

// MinLength is the shortest fragment that can carry the reads: one read
// length for single-end, two for paired so the inward-facing mates never
// extend past each other.
func (c Config) MinLength() int {
	if c.Paired {
		return 2 * c.ReadLen
	}
	return c.ReadLen
}

// Validate rejects parameter values no fragment can be drawn from.
func (c Config) Validate() error {
	if c.ReadLen < 1 {
		return fmt.Errorf("read length %d; want ≥ 1", c.ReadLen)
	}
	if !(c.Mean > 0) || math.IsInf(c.Mean, 0) {
		return fmt.Errorf("fragment length mean %v; want a finite value > 0", c.Mean)
	}
	if c.SD < 0 || math.IsNaN(c.SD) || math.IsInf(c.SD, 0) {
		return fmt.Errorf("fragment length sd %v; want a finite value ≥ 0", c.SD)
	}
	return nil
}

// Fits reports whether any valid fragment can be placed on a transcript
// of the given length.
func (c Config) Fits(txLen int) bool { return txLen >= c.MinLength() }

// Generator draws fragments for one (transcript, sample) unit of work.
// It is not safe for concurrent use; give each worker its own.
type Generator struct {
	cfg  Config
	norm distuv.Normal
	rnd  *rand.Rand
}

// NewGenerator returns a generator drawing from src.
func NewGenerator(cfg Config, src rand.Source) *Generator {
	return &Generator{
		cfg:  cfg,
		norm: distuv.Normal{Mu: cfg.Mean, Sigma: cfg.SD, Src: src},
		rnd:  rand.New(src),
	}
}

// Draw samples one fragment on a transcript of length txLen: length is a
// rounded normal draw clamped to [MinLength, txLen], start is uniform on
// the integer range [0, txLen−length]. The caller must ensure
// Fits(txLen).
func (g *Generator) Draw(txLen int) Fragment {
	length := int(math.Round(g.norm.Rand()))
	if min := g.cfg.MinLength(); length < min {
		length = min
	}
	if length > txLen {
		length = txLen
	}
	start := 0
	if room := txLen - length; room > 0 {
		start = g.rnd.Intn(room + 1)
	}
	return Fragment{Start: start, Length: length}
}

// DrawN samples n independent fragments.
func (g *Generator) DrawN(txLen, n int) []Fragment {
	out := make([]Fragment, n)
	for i := range out {
		out[i] = g.Draw(txLen)
	}
	return out
}
