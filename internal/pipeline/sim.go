// internal/pipeline/sim.go
package pipeline

import (
	"golang.org/x/exp/rand"

	"rnasim-core/engine"
)

// Simulator is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Simulator interface {
	Fits(txLen int) bool
	Simulate(txID string, tx []byte, n int, src rand.Source) []engine.Read
}
