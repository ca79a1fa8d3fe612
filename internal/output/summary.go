// internal/output/summary.go
package output

import (
	"fmt"
	"io"

	"rnasim-core/counts"
)

// TxInfoHeader is the column line of sim_tx_info.tsv.
const TxInfoHeader = "transcript_id\tfold_change\tDE_status"

// WriteTxInfo writes the per-transcript design table: id, configured
// fold change, and whether the transcript is differentially expressed
// (fold change ≠ 1).
func WriteTxInfo(w io.Writer, ids []string, foldChanges []float64) error {
	if _, err := fmt.Fprintln(w, TxInfoHeader); err != nil {
		return err
	}
	for i, id := range ids {
		fc := 1.0
		if foldChanges != nil {
			fc = foldChanges[i]
		}
		if _, err := fmt.Fprintf(w, "%s\t%g\t%t\n", id, fc, fc != 1); err != nil {
			return err
		}
	}
	return nil
}

// WriteCountsTSV writes the realized count matrix, one row per
// transcript, first column the transcript id, remaining columns the
// per-sample counts.
func WriteCountsTSV(w io.Writer, ids []string, m *counts.Matrix, header bool) error {
	if header {
		if _, err := fmt.Fprint(w, "transcript_id"); err != nil {
			return err
		}
		for s := 1; s <= m.Samples(); s++ {
			if _, err := fmt.Fprintf(w, "\tsample_%02d", s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for t, id := range ids {
		if _, err := fmt.Fprint(w, id); err != nil {
			return err
		}
		for _, c := range m.Row(t) {
			if _, err := fmt.Fprintf(w, "\t%d", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
