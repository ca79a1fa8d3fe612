// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"rnasim/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles        []string
	CountMatrixFile string
	FoldChangeFile  string
	SizeFile        string

	// Count model
	ReadsPerTranscript float64
	Size               float64 // 0 = default (mean/3)
	NumReps            [2]int

	// Read generation
	ReadLen   int
	FragMean  float64
	FragSD    float64
	ErrorRate float64
	Paired    bool
	Seed      uint64

	// Performance
	Threads int

	// Output
	OutDir    string
	Gzip      bool
	NoSummary bool
	Quiet     bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: simulate RNA-seq reads from transcript sequences

Version: %s

Reads are drawn per transcript per sample from a negative-binomial count
model (or an explicit count matrix), fragmented, strand-flipped, and
emitted as per-sample FASTA files with per-base substitution errors.

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

	// Input
	var seqs stringSlice
	fs.Var(&seqs, "transcripts", "transcript FASTA file(s) (repeatable, .gz OK, '-' for stdin) [*]")
	fs.StringVar(&opt.CountMatrixFile, "count-matrix", "", "explicit count matrix TSV (bypasses the count model)")
	fs.StringVar(&opt.FoldChangeFile, "fold-changes", "", "TSV of transcript_id fold_change (default 1)")
	fs.StringVar(&opt.SizeFile, "size-file", "", "TSV of transcript_id dispersion size")

	// Count model
	fs.Float64Var(&opt.ReadsPerTranscript, "reads-per-transcript", 300, "baseline mean reads per transcript [300]")
	fs.Float64Var(&opt.Size, "size", 0, "negative-binomial size for all transcripts (0 = mean/3) [0]")
	reps := fs.String("num-reps", "3,3", "replicates per group, 'N' or 'N,M' [3,3]")

	// Read generation
	fs.IntVar(&opt.ReadLen, "read-length", 100, "read length in bases [100]")
	fs.Float64Var(&opt.FragMean, "frag-mean", 250, "mean fragment length [250]")
	fs.Float64Var(&opt.FragSD, "frag-sd", 25, "fragment length standard deviation [25]")
	fs.Float64Var(&opt.ErrorRate, "error-rate", 0.005, "per-base substitution error rate [0.005]")
	fs.BoolVar(&opt.Paired, "paired", false, "emit paired-end mates [false]")
	fs.Uint64Var(&opt.Seed, "seed", 1, "run seed; fixed seeds reproduce byte-identical output [1]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.OutDir, "out-dir", "", "output directory for per-sample FASTA files [*]")
	fs.BoolVar(&opt.Gzip, "gzip", false, "gzip-compress output FASTA files [false]")
	fs.BoolVar(&opt.NoSummary, "no-summary", false, "skip sim_tx_info.tsv and sim_counts.tsv [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

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

	var err error
	if opt.NumReps, err = parseNumReps(*reps); err != nil {
		return opt, err
	}

	// Validation
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --transcripts file is required")
	}
	if opt.OutDir == "" {
		return opt, errors.New("--out-dir is required")
	}
	if opt.CountMatrixFile != "" && (opt.FoldChangeFile != "" || opt.SizeFile != "") {
		return opt, errors.New("--count-matrix conflicts with --fold-changes/--size-file")
	}
	if opt.ReadsPerTranscript < 0 {
		return opt, errors.New("--reads-per-transcript must be ≥ 0")
	}
	if opt.Size < 0 {
		return opt, errors.New("--size must be ≥ 0")
	}
	if opt.ReadLen < 1 {
		return opt, errors.New("--read-length must be ≥ 1")
	}
	if opt.FragMean <= 0 {
		return opt, errors.New("--frag-mean must be > 0")
	}
	if opt.FragSD < 0 {
		return opt, errors.New("--frag-sd must be ≥ 0")
	}
	if opt.ErrorRate < 0 || opt.ErrorRate > 1 {
		return opt, errors.New("--error-rate must be in [0,1]")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	return opt, nil
}

// parseNumReps accepts "N" or "N,M"; group 1 needs at least one replicate.
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

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
