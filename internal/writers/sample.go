// internal/writers/sample.go
package writers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"rnasim-core/engine"
)

// SampleWriter owns the output stream(s) of one sample: a single FASTA
// file, or a mate-1/mate-2 pair for paired mode. Streams are opened once
// and appended to in generation order. A writer belongs to exactly one
// goroutine.
type SampleWriter struct {
	paths []string
	files []*os.File
	gzws  []*gzip.Writer
	outs  []*bufio.Writer
}

// Filenames returns the output file name(s) for a 1-based sample number.
func Filenames(sampleNum int, paired, gz bool) []string {
	ext := ".fasta"
	if gz {
		ext += ".gz"
	}
	if !paired {
		return []string{fmt.Sprintf("sample_%02d%s", sampleNum, ext)}
	}
	return []string{
		fmt.Sprintf("sample_%02d_1%s", sampleNum, ext),
		fmt.Sprintf("sample_%02d_2%s", sampleNum, ext),
	}
}

// NewSampleWriter creates the sample's file(s) under dir, truncating any
// previous run's output.
func NewSampleWriter(dir string, sampleNum int, paired, gz bool) (*SampleWriter, error) {
	w := &SampleWriter{}
	for _, name := range Filenames(sampleNum, paired, gz) {
		path := filepath.Join(dir, name)
		fh, err := os.Create(path)
		if err != nil {
			_ = w.Discard()
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		w.paths = append(w.paths, path)
		w.files = append(w.files, fh)
		var out io.Writer = fh
		if gz {
			gw := gzip.NewWriter(fh)
			w.gzws = append(w.gzws, gw)
			out = gw
		}
		w.outs = append(w.outs, bufio.NewWriterSize(out, 1<<16))
	}
	return w, nil
}

// Write serializes one read as a two-line FASTA record. The header is
// ">{transcript}/read{K}" with a "/1" or "/2" mate suffix for paired
// reads; K is the per-transcript read index.
func (w *SampleWriter) Write(r engine.Read) error {
	out := w.outs[0]
	if r.Mate == 2 {
		out = w.outs[1]
	}
	var err error
	if r.Mate == 0 {
		_, err = fmt.Fprintf(out, ">%s/read%d\n%s\n", r.TranscriptID, r.Index, r.Seq)
	} else {
		_, err = fmt.Fprintf(out, ">%s/read%d/%d\n%s\n", r.TranscriptID, r.Index, r.Mate, r.Seq)
	}
	return err
}

// Close flushes and closes every stream.
func (w *SampleWriter) Close() error {
	var err error
	keep := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	for _, b := range w.outs {
		keep(b.Flush())
	}
	for _, g := range w.gzws {
		keep(g.Close())
	}
	for _, f := range w.files {
		keep(f.Close())
	}
	return err
}

// Discard closes the streams and removes the files. Used to drop a
// failing sample's partial output without disturbing other samples.
func (w *SampleWriter) Discard() error {
	var err error
	for _, f := range w.files {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}
	for _, p := range w.paths {
		if e := os.Remove(p); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Paths returns the file paths owned by the writer.
func (w *SampleWriter) Paths() []string { return w.paths }
