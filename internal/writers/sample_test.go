// internal/writers/sample_test.go
package writers

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rnasim-core/engine"
)

func TestFilenames(t *testing.T) {
	cases := []struct {
		paired, gz bool
		want       []string
	}{
		{false, false, []string{"sample_03.fasta"}},
		{false, true, []string{"sample_03.fasta.gz"}},
		{true, false, []string{"sample_03_1.fasta", "sample_03_2.fasta"}},
		{true, true, []string{"sample_03_1.fasta.gz", "sample_03_2.fasta.gz"}},
	}
	for _, c := range cases {
		got := Filenames(3, c.paired, c.gz)
		if len(got) != len(c.want) {
			t.Fatalf("Filenames(3,%v,%v) = %v", c.paired, c.gz, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("Filenames(3,%v,%v)[%d] = %s, want %s", c.paired, c.gz, i, got[i], c.want[i])
			}
		}
	}
}

func TestSingleEndRecords(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSampleWriter(dir, 1, false, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	reads := []engine.Read{
		{TranscriptID: "tx1", Index: 1, Seq: []byte("ACGT")},
		{TranscriptID: "tx1", Index: 2, Seq: []byte("TTTT")},
	}
	for _, r := range reads {
		if err := w.Write(r); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sample_01.fasta"))
	if err != nil {
		t.Fatal(err)
	}
	want := ">tx1/read1\nACGT\n>tx1/read2\nTTTT\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestPairedRoutesMates(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSampleWriter(dir, 2, true, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	pair := []engine.Read{
		{TranscriptID: "tx9", Index: 1, Mate: 1, Seq: []byte("AAAA")},
		{TranscriptID: "tx9", Index: 1, Mate: 2, Seq: []byte("CCCC")},
	}
	for _, r := range pair {
		if err := w.Write(r); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	m1, _ := os.ReadFile(filepath.Join(dir, "sample_02_1.fasta"))
	m2, _ := os.ReadFile(filepath.Join(dir, "sample_02_2.fasta"))
	if string(m1) != ">tx9/read1/1\nAAAA\n" {
		t.Errorf("mate-1 file = %q", m1)
	}
	if string(m2) != ">tx9/read1/2\nCCCC\n" {
		t.Errorf("mate-2 file = %q", m2)
	}
}

func TestGzipOutput(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSampleWriter(dir, 1, false, true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Write(engine.Read{TranscriptID: "tx1", Index: 1, Seq: []byte("ACGT")}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	fh, err := os.Open(filepath.Join(dir, "sample_01.fasta.gz"))
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	gr, err := gzip.NewReader(fh)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), ">tx1/read1\nACGT\n") {
		t.Errorf("decompressed output = %q", data)
	}
}

func TestDiscardRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSampleWriter(dir, 1, true, false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = w.Write(engine.Read{TranscriptID: "tx1", Index: 1, Mate: 1, Seq: []byte("ACGT")})
	if err := w.Discard(); err != nil {
		t.Fatalf("discard: %v", err)
	}
	for _, p := range w.Paths() {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists after Discard", p)
		}
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	if _, err := NewSampleWriter(filepath.Join(t.TempDir(), "missing", "deeper"), 1, false, false); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
