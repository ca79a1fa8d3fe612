// internal/countscli/options.go
package countscli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"rnasim/internal/version"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options holds all CLI flags for the standalone count-matrix tool.
type Options struct {
	SeqFiles       []string
	FoldChangeFile string
	SizeFile       string

	ReadsPerTranscript float64
	Size               float64
	NumReps            [2]int
	Seed               uint64

	Output string
	Header bool // true unless --no-header

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: draw a negative-binomial read-count matrix

Version: %s

Generates the per-transcript per-sample counts of an RNA-seq experiment
design without simulating reads. The same seed yields the same matrix
that rnasim would use.

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var seqs stringSlice
	fs.Var(&seqs, "transcripts", "transcript FASTA file(s) for ids and ordering (repeatable) [*]")
	fs.StringVar(&opt.FoldChangeFile, "fold-changes", "", "TSV of transcript_id fold_change (default 1)")
	fs.StringVar(&opt.SizeFile, "size-file", "", "TSV of transcript_id dispersion size")
	fs.Float64Var(&opt.ReadsPerTranscript, "reads-per-transcript", 300, "baseline mean reads per transcript [300]")
	fs.Float64Var(&opt.Size, "size", 0, "negative-binomial size for all transcripts (0 = mean/3) [0]")
	reps := fs.String("num-reps", "3,3", "replicates per group, 'N' or 'N,M' [3,3]")
	fs.Uint64Var(&opt.Seed, "seed", 1, "run seed [1]")

	fs.StringVar(&opt.Output, "output", FormatText, "output format: text | json [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seqs
	opt.Header = !noHeader

	var err error
	if opt.NumReps, err = parseNumReps(*reps); err != nil {
		return opt, err
	}

	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --transcripts file is required")
	}
	if opt.ReadsPerTranscript < 0 {
		return opt, errors.New("--reads-per-transcript must be ≥ 0")
	}
	if opt.Size < 0 {
		return opt, errors.New("--size must be ≥ 0")
	}
	if opt.Output != FormatText && opt.Output != FormatJSON {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

func parseNumReps(s string) ([2]int, error) {
	var out [2]int
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return out, fmt.Errorf("invalid --num-reps %q; want 'N' or 'N,M'", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("invalid --num-reps %q: %v", s, err)
		}
		out[i] = n
	}
	if out[0] < 1 || out[1] < 0 {
		return out, fmt.Errorf("invalid --num-reps %q; group 1 needs ≥ 1 replicate", s)
	}
	return out, nil
}

type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
