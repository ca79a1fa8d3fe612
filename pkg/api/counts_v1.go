// pkg/api/counts_v1.go
package api

// CountMatrixV1 is the stable JSON schema for a simulated count matrix.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type CountMatrixV1 struct {
	Samples    int          `json:"samples"`
	GroupSizes [2]int       `json:"group_sizes"`
	Seed       uint64       `json:"seed"`
	Rows       []CountRowV1 `json:"rows"`
}

// CountRowV1 is one transcript's row of the matrix.
type CountRowV1 struct {
	TranscriptID string  `json:"transcript_id"`
	FoldChange   float64 `json:"fold_change"`
	Counts       []int   `json:"counts"`
}
