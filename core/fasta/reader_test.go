// core/fasta/reader_test.go
package fasta

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStreamRecordsBasic(t *testing.T) {
	in := ">tx1 some description\nACGT\nACGT\n>tx2\nTTTT\n"
	var got []Record
	err := StreamRecords(context.Background(), strings.NewReader(in), func(r Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ID != "tx1" || string(got[0].Seq) != "ACGTACGT" {
		t.Errorf("record 0 = %q %q", got[0].ID, got[0].Seq)
	}
	if got[1].ID != "tx2" || string(got[1].Seq) != "TTTT" {
		t.Errorf("record 1 = %q %q", got[1].ID, got[1].Seq)
	}
}

func TestStreamRecordsEmptyInput(t *testing.T) {
	n := 0
	err := StreamRecords(context.Background(), strings.NewReader(""), func(Record) error {
		n++
		return nil
	})
	if err != nil || n != 0 {
		t.Fatalf("err=%v n=%d, want nil 0", err, n)
	}
}

func TestStreamRecordsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := StreamRecords(ctx, strings.NewReader(">a\nACGT\n"), func(Record) error { return nil })
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestReadAllGzip(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tx.fa.gz")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(">tx1\nACGTACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadAll(fn)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "tx1" || string(recs[0].Seq) != "ACGTACGT" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestReadAllFilesOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	if err := os.WriteFile(a, []byte(">a1\nAAAA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(">b1\nCCCC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadAllFiles(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("ReadAllFiles: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "a1" || recs[1].ID != "b1" {
		t.Fatalf("unexpected order: %+v", recs)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
