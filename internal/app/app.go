// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"rnasim-core/counts"
	"rnasim-core/engine"
	"rnasim-core/fasta"
	"rnasim-core/seq"

	"rnasim/internal/cli"
	"rnasim/internal/output"
	"rnasim/internal/pipeline"
	"rnasim/internal/version"
	"rnasim/internal/writers"
)

// TxInfoFile and CountsFile are the summary tables written next to the
// per-sample FASTA output.
const (
	TxInfoFile = "sim_tx_info.tsv"
	CountsFile = "sim_counts.tsv"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("rnasim")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rnasim version %s\n", version.Version)
		return 0
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	transcripts, err := fasta.ReadAllFiles(ctx, opts.SeqFiles)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	ids, err := validateTranscripts(transcripts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	eng := engine.New(engine.Config{
		ReadLen:   opts.ReadLen,
		FragMean:  opts.FragMean,
		FragSD:    opts.FragSD,
		Paired:    opts.Paired,
		ErrorRate: opts.ErrorRate,
	})
	if err := eng.Config().Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	m, foldChanges, err := buildCounts(opts, ids)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if !opts.NoSummary {
		if err := writeSummaries(opts.OutDir, ids, foldChanges, m); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	perr := pipeline.Run(ctx, pipeline.Config{
		Threads: thr,
		OutDir:  opts.OutDir,
		Paired:  opts.Paired,
		Gzip:    opts.Gzip,
		Seed:    opts.Seed,
		Quiet:   opts.Quiet,
	}, transcripts, m, eng, stderr)

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// validateTranscripts uppercases and checks each sequence, rejects
// duplicate ids, and returns the id list in input order.
func validateTranscripts(recs []fasta.Record) ([]string, error) {
	if len(recs) == 0 {
		return nil, errors.New("no transcripts found")
	}
	seen := make(map[string]struct{}, len(recs))
	ids := make([]string, len(recs))
	for i, r := range recs {
		if r.ID == "" {
			return nil, fmt.Errorf("transcript %d has an empty id", i+1)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate transcript id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if err := seq.Validate(r.Seq); err != nil {
			return nil, fmt.Errorf("transcript %s: %w", r.ID, err)
		}
		ids[i] = r.ID
	}
	return ids, nil
}

// buildCounts produces the count matrix from either the explicit matrix
// file or the negative-binomial model, plus the fold-change vector used
// for the summary table (nil for the explicit path).
func buildCounts(opts cli.Options, ids []string) (*counts.Matrix, []float64, error) {
	if opts.CountMatrixFile != "" {
		m, err := counts.LoadMatrixTSV(opts.CountMatrixFile)
		if err != nil {
			return nil, nil, err
		}
		if m.Transcripts() != len(ids) {
			return nil, nil, fmt.Errorf("count matrix has %d rows for %d transcripts", m.Transcripts(), len(ids))
		}
		return m, nil, nil
	}

	p := counts.Params{
		BaseMeans:  uniform(opts.ReadsPerTranscript, len(ids)),
		GroupSizes: opts.NumReps,
		Seed:       opts.Seed,
	}
	if opts.FoldChangeFile != "" {
		vals, err := counts.LoadValuesTSV(opts.FoldChangeFile)
		if err != nil {
			return nil, nil, err
		}
		if p.FoldChanges, err = counts.AlignValues(vals, ids, 1); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.FoldChangeFile, err)
		}
	}
	if opts.SizeFile != "" {
		vals, err := counts.LoadValuesTSV(opts.SizeFile)
		if err != nil {
			return nil, nil, err
		}
		// Transcripts absent from the file fall back to the scalar
		// --size, or to the model default mean/3.
		def := opts.Size
		if def == 0 {
			def = opts.ReadsPerTranscript / 3
		}
		if p.Sizes, err = counts.AlignValues(vals, ids, def); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.SizeFile, err)
		}
	} else if opts.Size > 0 {
		p.Sizes = uniform(opts.Size, len(ids))
	}

	m, err := counts.Sample(p)
	if err != nil {
		return nil, nil, err
	}
	return m, p.FoldChanges, nil
}

func writeSummaries(dir string, ids []string, foldChanges []float64, m *counts.Matrix) error {
	txInfo, err := os.Create(filepath.Join(dir, TxInfoFile))
	if err != nil {
		return err
	}
	if err := output.WriteTxInfo(txInfo, ids, foldChanges); err != nil {
		_ = txInfo.Close()
		return err
	}
	if err := txInfo.Close(); err != nil {
		return err
	}

	cnt, err := os.Create(filepath.Join(dir, CountsFile))
	if err != nil {
		return err
	}
	if err := output.WriteCountsTSV(cnt, ids, m, true); err != nil {
		_ = cnt.Close()
		return err
	}
	return cnt.Close()
}

func uniform(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
