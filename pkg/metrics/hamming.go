package metrics

import (
	"fmt"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// hammingDistance counts positional mismatches. Defined for equal-length
// sequences only; with the padding policy the shorter input is treated as
// padded with units that never match.
func hammingDistance(s1, s2 sequence.Seq, o *options) (float64, error) {
	if len(s1) != len(s2) && !o.padding {
		return 0, fmt.Errorf("%w: %d vs %d units", ErrLengthMismatch, len(s1), len(s2))
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	dist := len(s2) - len(s1)
	for i := range s1 {
		if s1[i] != s2[i] {
			dist++
		}
	}
	return boundResult(float64(dist), o), nil
}
