// core/engine/errmdl.go
package engine

import "golang.org/x/exp/rand"

// alternatives[b] lists the three bases a corrupted b can become. A
// substitution is never a no-op. Ambiguity codes have no well-defined
// alternative set and pass through unmodified.
var alternatives [256][3]byte

func init() {
	alternatives['A'] = [3]byte{'C', 'G', 'T'}
	alternatives['C'] = [3]byte{'A', 'G', 'T'}
	alternatives['G'] = [3]byte{'A', 'C', 'T'}
	alternatives['T'] = [3]byte{'A', 'C', 'G'}
}

// injectErrors corrupts each eligible base of s independently with
// probability rate, replacing it uniformly with one of the three other
// bases. s is modified in place.
func injectErrors(s []byte, rate float64, rnd *rand.Rand) {
	if rate <= 0 {
		return
	}
	for i, b := range s {
		if alternatives[b][0] == 0 {
			continue
		}
		if rnd.Float64() >= rate {
			continue
		}
		s[i] = alternatives[b][rnd.Intn(3)]
	}
}
