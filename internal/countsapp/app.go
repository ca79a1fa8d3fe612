// internal/countsapp/app.go
package countsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"rnasim-core/counts"
	"rnasim-core/fasta"

	"rnasim/internal/countscli"
	"rnasim/internal/jsonutil"
	"rnasim/internal/output"
	"rnasim/internal/version"
	"rnasim/internal/writers"
	"rnasim/pkg/api"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := countscli.NewFlagSet("rnasim-counts")
	fs.SetOutput(io.Discard)

	opts, err := countscli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rnasim-counts version %s\n", version.Version)
		return 0
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	transcripts, err := fasta.ReadAllFiles(ctx, opts.SeqFiles)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if len(transcripts) == 0 {
		_, _ = fmt.Fprintln(stderr, "no transcripts found")
		return 2
	}
	ids := make([]string, len(transcripts))
	for i, r := range transcripts {
		ids[i] = r.ID
	}

	p := counts.Params{
		BaseMeans:  uniform(opts.ReadsPerTranscript, len(ids)),
		GroupSizes: opts.NumReps,
		Seed:       opts.Seed,
	}
	if opts.FoldChangeFile != "" {
		vals, err := counts.LoadValuesTSV(opts.FoldChangeFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if p.FoldChanges, err = counts.AlignValues(vals, ids, 1); err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.FoldChangeFile, err)
			return 2
		}
	}
	if opts.SizeFile != "" {
		vals, err := counts.LoadValuesTSV(opts.SizeFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		def := opts.Size
		if def == 0 {
			def = opts.ReadsPerTranscript / 3
		}
		if p.Sizes, err = counts.AlignValues(vals, ids, def); err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.SizeFile, err)
			return 2
		}
	} else if opts.Size > 0 {
		p.Sizes = uniform(opts.Size, len(ids))
	}

	m, err := counts.Sample(p)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	switch opts.Output {
	case countscli.FormatJSON:
		err = jsonutil.EncodePretty(outw, toAPI(p, ids, m))
	default:
		err = output.WriteCountsTSV(outw, ids, m, opts.Header)
	}
	if writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func toAPI(p counts.Params, ids []string, m *counts.Matrix) api.CountMatrixV1 {
	out := api.CountMatrixV1{
		Samples:    m.Samples(),
		GroupSizes: p.GroupSizes,
		Seed:       p.Seed,
		Rows:       make([]api.CountRowV1, len(ids)),
	}
	for t, id := range ids {
		out.Rows[t] = api.CountRowV1{
			TranscriptID: id,
			FoldChange:   p.FoldChange(t),
			Counts:       append([]int(nil), m.Row(t)...),
		}
	}
	return out
}

func uniform(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
