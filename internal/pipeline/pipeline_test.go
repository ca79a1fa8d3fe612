// internal/pipeline/pipeline_test.go
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/exp/rand"

	"rnasim-core/counts"
	"rnasim-core/engine"
	"rnasim-core/fasta"
)

// fakeSim emits n fixed-length reads per request and requires a minimum
// transcript length of 10.
type fakeSim struct{}

func (fakeSim) Fits(txLen int) bool { return txLen >= 10 }

func (fakeSim) Simulate(txID string, tx []byte, n int, src rand.Source) []engine.Read {
	reads := make([]engine.Read, n)
	for i := range reads {
		reads[i] = engine.Read{TranscriptID: txID, Index: i + 1, Start: 0, End: len(tx), Seq: tx[:4]}
	}
	return reads
}

func matrix(t *testing.T, rows [][]int) *counts.Matrix {
	t.Helper()
	m, err := counts.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func countRecords(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Count(string(data), ">")
}

func TestRunWritesPerSampleFiles(t *testing.T) {
	dir := t.TempDir()
	txs := []fasta.Record{
		{ID: "tx1", Seq: []byte("ACGTACGTACGT")},
		{ID: "tx2", Seq: []byte("TTTTGGGGCCCC")},
	}
	m := matrix(t, [][]int{{3, 1}, {0, 2}})

	var errBuf bytes.Buffer
	err := Run(context.Background(), Config{Threads: 2, OutDir: dir, Seed: 1}, txs, m, fakeSim{}, &errBuf)
	if err != nil {
		t.Fatalf("run: %v (stderr %s)", err, errBuf.String())
	}

	if got := countRecords(t, filepath.Join(dir, "sample_01.fasta")); got != 3 {
		t.Errorf("sample 1 has %d records, want 3", got)
	}
	if got := countRecords(t, filepath.Join(dir, "sample_02.fasta")); got != 3 {
		t.Errorf("sample 2 has %d records, want 3 (1 from tx1 + 2 from tx2)", got)
	}

	// tx2 count is 0 in sample 1: no tx2 records there.
	data, _ := os.ReadFile(filepath.Join(dir, "sample_01.fasta"))
	if strings.Contains(string(data), "tx2") {
		t.Error("sample 1 contains reads for a zero-count transcript")
	}
}

func TestRunSkipsShortTranscripts(t *testing.T) {
	dir := t.TempDir()
	txs := []fasta.Record{
		{ID: "short", Seq: []byte("ACGT")}, // below fakeSim's minimum
		{ID: "ok", Seq: []byte("ACGTACGTACGT")},
	}
	m := matrix(t, [][]int{{5}, {2}})

	var errBuf bytes.Buffer
	err := Run(context.Background(), Config{Threads: 1, OutDir: dir, Seed: 1}, txs, m, fakeSim{}, &errBuf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := countRecords(t, filepath.Join(dir, "sample_01.fasta")); got != 2 {
		t.Errorf("%d records, want 2 (short transcript skipped)", got)
	}
	if !strings.Contains(errBuf.String(), "short") {
		t.Errorf("expected a warning naming the skipped transcript, got %q", errBuf.String())
	}
}

func TestRunQuietSuppressesWarnings(t *testing.T) {
	dir := t.TempDir()
	txs := []fasta.Record{{ID: "short", Seq: []byte("AC")}}
	m := matrix(t, [][]int{{5}})

	var errBuf bytes.Buffer
	if err := Run(context.Background(), Config{Threads: 1, OutDir: dir, Seed: 1, Quiet: true}, txs, m, fakeSim{}, &errBuf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if errBuf.Len() != 0 {
		t.Errorf("quiet run wrote warnings: %q", errBuf.String())
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	txs := []fasta.Record{{ID: "tx1", Seq: []byte("ACGTACGTACGT")}}
	m := matrix(t, [][]int{{1}, {1}})
	err := Run(context.Background(), Config{Threads: 1, OutDir: t.TempDir(), Seed: 1}, txs, m, fakeSim{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestRunMissingOutDir(t *testing.T) {
	txs := []fasta.Record{{ID: "tx1", Seq: []byte("ACGTACGTACGT")}}
	m := matrix(t, [][]int{{1}})
	err := Run(context.Background(), Config{Threads: 1, OutDir: filepath.Join(t.TempDir(), "nope", "deeper"), Seed: 1}, txs, m, fakeSim{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unwritable output directory")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	txs := []fasta.Record{{ID: "tx1", Seq: []byte("ACGTACGTACGT")}}
	m := matrix(t, [][]int{{1}})
	err := Run(ctx, Config{Threads: 1, OutDir: t.TempDir(), Seed: 1}, txs, m, fakeSim{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRunManySamplesAllFilesPresent(t *testing.T) {
	dir := t.TempDir()
	txs := []fasta.Record{{ID: "tx1", Seq: []byte("ACGTACGTACGT")}}
	row := make([]int, 12)
	for i := range row {
		row[i] = 1
	}
	m := matrix(t, [][]int{row})
	if err := Run(context.Background(), Config{Threads: 4, OutDir: dir, Seed: 1}, txs, m, fakeSim{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for s := 1; s <= 12; s++ {
		fn := filepath.Join(dir, fmt.Sprintf("sample_%02d.fasta", s))
		if _, err := os.Stat(fn); err != nil {
			t.Errorf("missing %s", fn)
		}
	}
}
