// core/counts/loader.go
package counts

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadMatrixTSV reads a whitespace-separated count matrix: one row per
// transcript, one column per sample. Blank lines and #-comments are
// skipped. The result is validated by FromRows.
func LoadMatrixTSV(path string) (*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	var rows [][]int
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%s:%d column %d: %q is not an integer", path, ln, i+1, f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadValuesTSV reads a two-column table mapping transcript id to a
// positive real (fold changes or dispersions). Blank lines and
// #-comments are skipped.
func LoadValuesTSV(path string) (map[string]float64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	vals := make(map[string]float64)
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count %d, want 2 (id value)", path, ln, len(f))
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad value %q: %v", path, ln, f[1], err)
		}
		if _, dup := vals[f[0]]; dup {
			return nil, fmt.Errorf("%s:%d duplicate transcript id %q", path, ln, f[0])
		}
		vals[f[0]] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vals, nil
}

// AlignValues orders a id→value map along ids, filling def for missing
// ids and rejecting ids that match no transcript.
func AlignValues(vals map[string]float64, ids []string, def float64) ([]float64, error) {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	out := make([]float64, len(ids))
	for i := range out {
		out[i] = def
	}
	for id, v := range vals {
		i, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("unknown transcript id %q", id)
		}
		out[i] = v
	}
	return out, nil
}
