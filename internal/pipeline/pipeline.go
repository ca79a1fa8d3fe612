// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"rnasim-core/counts"
	"rnasim-core/fasta"
	"rnasim-core/rng"

	"rnasim/internal/cmdutil"
	"rnasim/internal/writers"
)

// Config controls the emission pipeline.
type Config struct {
	Threads int  // number of worker goroutines (>=1)
	OutDir  string
	Paired  bool
	Gzip    bool
	Seed    uint64
	Quiet   bool
}

// Run partitions work by sample across a bounded worker pool and streams
// each sample's reads into its own writer. Every (transcript, sample)
// cell draws from its own seeded substream, so output is identical for a
// fixed seed regardless of worker count.
//
// A failing sample discards its partial files; other samples' completed
// output is untouched. The first error encountered is returned.
func Run(
	ctx context.Context,
	cfg Config,
	transcripts []fasta.Record,
	m *counts.Matrix,
	sim Simulator,
	stderr io.Writer,
) error {
	if m.Transcripts() != len(transcripts) {
		return fmt.Errorf("count matrix has %d rows for %d transcripts", m.Transcripts(), len(transcripts))
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads > m.Samples() {
		cfg.Threads = m.Samples()
	}

	// Transcripts too short for the configured fragment floor are
	// skipped with zero reads; warn once per transcript up front so
	// worker scheduling cannot re-order or duplicate the messages.
	skipped := make([]bool, len(transcripts))
	for t, tx := range transcripts {
		if sim.Fits(len(tx.Seq)) {
			continue
		}
		skipped[t] = true
		requested := 0
		for _, c := range m.Row(t) {
			requested += c
		}
		if requested > 0 {
			cmdutil.Warnf(stderr, cfg.Quiet,
				"transcript %s (length %d) is too short for the configured read/fragment lengths; emitting zero reads",
				tx.ID, len(tx.Seq))
		}
	}

	jobs := make(chan int)
	errs := make([]error, m.Samples())

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for s := range jobs {
				errs[s] = runSample(ctx, cfg, transcripts, m, sim, skipped, s)
			}
		}()
	}

feed:
	for s := 0; s < m.Samples(); s++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- s:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runSample generates and writes every read of one sample. On any error
// the sample's partial output is removed.
func runSample(
	ctx context.Context,
	cfg Config,
	transcripts []fasta.Record,
	m *counts.Matrix,
	sim Simulator,
	skipped []bool,
	s int,
) error {
	w, err := writers.NewSampleWriter(cfg.OutDir, s+1, cfg.Paired, cfg.Gzip)
	if err != nil {
		return err
	}

	for t, tx := range transcripts {
		select {
		case <-ctx.Done():
			_ = w.Discard()
			return ctx.Err()
		default:
		}
		n := m.At(t, s)
		if n == 0 || skipped[t] {
			continue
		}
		src := rng.Source(cfg.Seed, rng.TagReads, t, s)
		for _, r := range sim.Simulate(tx.ID, tx.Seq, n, src) {
			if err := w.Write(r); err != nil {
				_ = w.Discard()
				return fmt.Errorf("sample %d: %w", s+1, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		_ = w.Discard()
		return fmt.Errorf("sample %d: %w", s+1, err)
	}
	return nil
}
