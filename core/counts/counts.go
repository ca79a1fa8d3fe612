// core/counts/counts.go
package counts

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"rnasim-core/rng"
)

// Matrix is a read-count matrix: rows are transcripts, columns samples.
// It is built once and read-only afterwards.
type Matrix struct {
	nTx, nSamples int
	counts        []int
}

// NewMatrix returns a zero matrix with the given dimensions.
func NewMatrix(nTx, nSamples int) *Matrix {
	return &Matrix{nTx: nTx, nSamples: nSamples, counts: make([]int, nTx*nSamples)}
}

// FromRows validates a user-supplied matrix: rectangular, at least one
// row and column, all entries non-negative.
func FromRows(rows [][]int) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("count matrix is empty")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for t, row := range rows {
		if len(row) != m.nSamples {
			return nil, fmt.Errorf("count matrix row %d has %d columns, want %d", t+1, len(row), m.nSamples)
		}
		for s, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("count matrix entry (%d,%d) is negative", t+1, s+1)
			}
			m.counts[t*m.nSamples+s] = v
		}
	}
	return m, nil
}

// Transcripts returns the number of rows.
func (m *Matrix) Transcripts() int { return m.nTx }

// Samples returns the number of columns.
func (m *Matrix) Samples() int { return m.nSamples }

// At returns the count for (transcript t, sample s), both 0-based.
func (m *Matrix) At(t, s int) int { return m.counts[t*m.nSamples+s] }

// Row returns transcript t's counts across samples. The returned slice
// aliases the matrix; callers must not modify it.
func (m *Matrix) Row(t int) []int {
	return m.counts[t*m.nSamples : (t+1)*m.nSamples]
}

// Params drives the stochastic count model.
type Params struct {
	// BaseMeans is the per-transcript baseline mean read count.
	BaseMeans []float64

	// FoldChanges holds the per-transcript ratio of group-1 mean to
	// group-2 mean. nil means no differential expression (all 1).
	// The symmetric convention is used: group-1 mean = base·√f,
	// group-2 mean = base/√f, so the ratio of group means is exactly f.
	FoldChanges []float64

	// Sizes is the per-transcript negative-binomial size (dispersion)
	// parameter; variance = mean + mean²/size. nil defaults each cell
	// to mean/3.
	Sizes []float64

	// GroupSizes is the number of replicate samples per group.
	// GroupSizes[1] may be zero for a single-group design, in which
	// case all fold changes must be 1.
	GroupSizes [2]int

	// Seed is the run seed; counts for cell (t,s) are drawn from the
	// substream (Seed, TagCounts, t, s).
	Seed uint64
}

// Samples returns the total number of samples across both groups.
func (p Params) Samples() int { return p.GroupSizes[0] + p.GroupSizes[1] }

// Validate checks the parameter vectors before any sampling happens.
func (p Params) Validate() error {
	nTx := len(p.BaseMeans)
	if nTx == 0 {
		return fmt.Errorf("no transcripts")
	}
	if p.GroupSizes[0] < 1 || p.GroupSizes[1] < 0 {
		return fmt.Errorf("group sizes %d,%d: group 1 needs at least one replicate", p.GroupSizes[0], p.GroupSizes[1])
	}
	for t, mu := range p.BaseMeans {
		if mu < 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
			return fmt.Errorf("baseline mean for transcript %d is %v; want a finite value ≥ 0", t+1, mu)
		}
	}
	if p.FoldChanges != nil {
		if len(p.FoldChanges) != nTx {
			return fmt.Errorf("fold-change vector has %d entries, want %d", len(p.FoldChanges), nTx)
		}
		for t, f := range p.FoldChanges {
			if !(f > 0) || math.IsInf(f, 0) {
				return fmt.Errorf("fold change for transcript %d is %v; want a finite value > 0", t+1, f)
			}
			if f != 1 && p.GroupSizes[1] == 0 {
				return fmt.Errorf("fold change %v for transcript %d needs a two-group design", f, t+1)
			}
		}
	}
	if p.Sizes != nil {
		if len(p.Sizes) != nTx {
			return fmt.Errorf("dispersion vector has %d entries, want %d", len(p.Sizes), nTx)
		}
		for t, k := range p.Sizes {
			if !(k > 0) || math.IsInf(k, 0) {
				return fmt.Errorf("dispersion for transcript %d is %v; want a finite value > 0", t+1, k)
			}
		}
	}
	return nil
}

// FoldChange returns transcript t's configured fold change (1 if none).
func (p Params) FoldChange(t int) float64 {
	if p.FoldChanges == nil {
		return 1
	}
	return p.FoldChanges[t]
}

// Mean returns the model mean for (transcript t, sample s).
func (p Params) Mean(t, s int) float64 {
	mu := p.BaseMeans[t]
	f := p.FoldChange(t)
	if f == 1 || p.GroupSizes[1] == 0 {
		return mu
	}
	if s < p.GroupSizes[0] {
		return mu * math.Sqrt(f)
	}
	return mu / math.Sqrt(f)
}

// Sample draws the full count matrix. Draws are independent across cells;
// each cell uses its own deterministic substream so the result does not
// depend on iteration order.
func Sample(p Params) (*Matrix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nTx, nS := len(p.BaseMeans), p.Samples()
	m := NewMatrix(nTx, nS)
	for t := 0; t < nTx; t++ {
		for s := 0; s < nS; s++ {
			mu := p.Mean(t, s)
			size := mu / 3
			if p.Sizes != nil {
				size = p.Sizes[t]
			}
			src := rng.Source(p.Seed, rng.TagCounts, t, s)
			m.counts[t*nS+s] = NegBinomial(mu, size, src)
		}
	}
	return m, nil
}

// NegBinomial draws one count with the given mean and size, where
// variance = mean + mean²/size. The draw is a Gamma–Poisson mixture:
// lambda ~ Gamma(α=size, rate=size/mean), count ~ Poisson(lambda).
// mean = 0 deterministically yields 0.
func NegBinomial(mean, size float64, src rand.Source) int {
	if mean <= 0 {
		return 0
	}
	g := distuv.Gamma{Alpha: size, Beta: size / mean, Src: src}
	lambda := g.Rand()
	if lambda <= 0 {
		return 0
	}
	pois := distuv.Poisson{Lambda: lambda, Src: src}
	return int(pois.Rand())
}
