// core/engine/engine.go
package engine

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"rnasim-core/fragment"
	"rnasim-core/seq"
)

// Config holds the read-generation parameters.
type Config struct {
	ReadLen   int
	FragMean  float64
	FragSD    float64
	Paired    bool
	ErrorRate float64 // per-base substitution probability
}

// Validate checks the configuration before any sampling begins.
func (c Config) Validate() error {
	if err := c.fragConfig().Validate(); err != nil {
		return err
	}
	if c.ErrorRate < 0 || c.ErrorRate > 1 || math.IsNaN(c.ErrorRate) {
		return fmt.Errorf("error rate %v; want a value in [0,1]", c.ErrorRate)
	}
	return nil
}

func (c Config) fragConfig() fragment.Config {
	return fragment.Config{ReadLen: c.ReadLen, Mean: c.FragMean, SD: c.FragSD, Paired: c.Paired}
}

// Read is one emitted read. For paired mode two Reads share an Index and
// carry Mate 1 and 2; Mate is 0 for single-end. Start/End are the
// originating fragment's coordinates on the transcript.
type Read struct {
	TranscriptID string
	Index        int // 1-based, per transcript per sample
	Mate         int
	Start, End   int
	Seq          []byte
}

// Engine turns (transcript, read count) into reads.
type Engine struct {
	cfg Config
}

// New creates an Engine.
func New(c Config) *Engine { return &Engine{cfg: c} }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Fits reports whether reads can be drawn from a transcript of the given
// length. Transcripts that do not fit are skipped with zero reads; the
// caller decides how to surface that.
func (e *Engine) Fits(txLen int) bool { return e.cfg.fragConfig().Fits(txLen) }

// Simulate draws n fragments on tx and emits the resulting reads, using
// src for every stochastic choice (fragment placement, strand, errors).
// The transcript sequence is never modified. Fits(len(tx)) must hold.
func (e *Engine) Simulate(txID string, tx []byte, n int, src rand.Source) []Read {
	if n <= 0 {
		return nil
	}
	gen := fragment.NewGenerator(e.cfg.fragConfig(), src)
	rnd := rand.New(src)
	rl := e.cfg.ReadLen

	perFrag := 1
	if e.cfg.Paired {
		perFrag = 2
	}
	reads := make([]Read, 0, n*perFrag)

	for i := 0; i < n; i++ {
		frag := gen.Draw(len(tx))
		sub := tx[frag.Start:frag.End()]

		// Unbiased strand choice; antisense reads come from the
		// reverse complement of the fragment.
		var oriented []byte
		if rnd.Intn(2) == 0 {
			oriented = append([]byte(nil), sub...)
		} else {
			oriented = seq.RevComp(sub)
		}

		base := Read{TranscriptID: txID, Index: i + 1, Start: frag.Start, End: frag.End()}

		if !e.cfg.Paired {
			r := base
			r.Seq = oriented[:rl]
			injectErrors(r.Seq, e.cfg.ErrorRate, rnd)
			reads = append(reads, r)
			continue
		}

		// Inward-facing pair: mate 1 from the 5' end of the oriented
		// fragment, mate 2 the reverse complement of its 3' end.
		m1 := base
		m1.Mate = 1
		m1.Seq = oriented[:rl]
		injectErrors(m1.Seq, e.cfg.ErrorRate, rnd)

		m2 := base
		m2.Mate = 2
		m2.Seq = seq.RevComp(oriented[len(oriented)-rl:])
		injectErrors(m2.Seq, e.cfg.ErrorRate, rnd)

		reads = append(reads, m1, m2)
	}
	return reads
}
