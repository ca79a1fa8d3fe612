// core/seq/validate.go
package seq

import "fmt"

// IUPAC DNA codes accepted in transcript sequences. Ambiguity codes are
// carried through the simulator unmodified; only A/C/G/T are eligible for
// substitution by the error model.
var iupac [256]bool

func init() {
	for _, b := range []byte("ACGTRYSWKMBDHVN") {
		iupac[b] = true
	}
}

// IsUnambiguous reports whether b is one of the four plain bases.
func IsUnambiguous(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// Validate uppercases s in place and returns an error if it is empty or
// contains a byte outside the IUPAC DNA alphabet.
func Validate(s []byte) error {
	if len(s) == 0 {
		return fmt.Errorf("empty sequence")
	}
	for i, b := range s {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
			s[i] = b
		}
		if !iupac[b] {
			return fmt.Errorf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N", b, i+1)
		}
	}
	return nil
}
