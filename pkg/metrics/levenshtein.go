package metrics

import (
	"math"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// levUniform computes the unit-cost Levenshtein distance. The pattern
// (shorter side) goes through the bit-parallel path when it fits in a
// machine word; bounded computations use a banded window instead. The
// general fallback is the classic rolling two-row DP.
func levUniform(s1, s2 sequence.Seq, o *options) float64 {
	if s1.Equal(s2) {
		return 0
	}
	// Pattern is the shorter sequence; the metric is symmetric.
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	lenDiff := float64(len(s2) - len(s1))
	if o.hasMax && lenDiff > o.maxDistance {
		return o.maxDistance + 1
	}
	if len(s1) == 0 {
		return boundResult(float64(len(s2)), o)
	}
	if len(s1) <= maxMyersLen {
		return boundResult(float64(distanceMyers64(s1, s2)), o)
	}
	if o.hasMax && o.maxDistance < float64(len(s2)) {
		return levBanded(s1, s2, int(o.maxDistance), o)
	}
	return boundResult(float64(levRolling(s1, s2)), o)
}

// levRolling is the two-row DP over a column buffer sized by the shorter
// sequence (never the full grid).
func levRolling(s1, s2 sequence.Seq) int {
	column := make([]int, len(s1)+1)
	for i := 1; i <= len(s1); i++ {
		column[i] = i
	}
	for j := 0; j < len(s2); j++ {
		ch2 := s2[j]
		column[0] = j + 1
		lastdiag := j
		for i := 0; i < len(s1); i++ {
			olddiag := column[i+1]
			cost := 0
			if s1[i] != ch2 {
				cost = 1
			}
			column[i+1] = min(column[i+1]+1, column[i]+1, lastdiag+cost)
			lastdiag = olddiag
		}
	}
	return column[len(s1)]
}

// levBanded restricts the DP to a diagonal window of width 2k+1.
// Cells outside the window behave as +inf, so any path through them is
// never chosen; if the final cell exceeds the bound the sentinel k+1 is
// returned. Assumes len(s1) <= len(s2) and len(s2)-len(s1) <= k.
func levBanded(s1, s2 sequence.Seq, k int, o *options) float64 {
	const inf = math.MaxInt32 / 2

	column := make([]int, len(s1)+1)
	for i := 0; i <= len(s1); i++ {
		if i <= k {
			column[i] = i
		} else {
			column[i] = inf
		}
	}

	for j := 1; j <= len(s2); j++ {
		ch2 := s2[j-1]
		lo := 1
		if j-k > lo {
			lo = j - k
		}
		hi := len(s1)
		if j+k < hi {
			hi = j + k
		}
		if lo > hi {
			return o.maxDistance + 1
		}

		// The window's upper-left neighbour shifts each column; cells
		// that just fell out of the band read as +inf.
		lastdiag := column[lo-1]
		if lo == 1 {
			column[0] = j
			if j > k {
				column[0] = inf
			}
		} else {
			column[lo-1] = inf
		}

		for i := lo; i <= hi; i++ {
			olddiag := column[i]
			cost := 0
			if s1[i-1] != ch2 {
				cost = 1
			}
			column[i] = min(column[i]+1, column[i-1]+1, lastdiag+cost)
			lastdiag = olddiag
		}
		if hi < len(s1) {
			column[hi+1] = inf
		}
	}

	if column[len(s1)] > k {
		return o.maxDistance + 1
	}
	return float64(column[len(s1)])
}

// levWeighted runs the generic per-operation-cost DP. Weights (1,1,2)
// reduce to the Indel distance and take its faster path.
func levWeighted(s1, s2 sequence.Seq, o *options) float64 {
	if o.insertCost == 1 && o.deleteCost == 1 && o.subCost == 2 {
		return indelDistance(s1, s2, o)
	}
	if s1.Equal(s2) {
		return 0
	}
	ins, del, sub := o.insertCost, o.deleteCost, o.subCost
	if len(s2) == 0 {
		return boundResult(float64(len(s1))*del, o)
	}
	if len(s1) == 0 {
		return boundResult(float64(len(s2))*ins, o)
	}
	// Substituting never pays more than a delete plus an insert.
	if del+ins < sub {
		sub = del + ins
	}

	prev := make([]float64, len(s2)+1)
	curr := make([]float64, len(s2)+1)
	for j := 1; j <= len(s2); j++ {
		prev[j] = float64(j) * ins
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = float64(i) * del
		for j := 1; j <= len(s2); j++ {
			cost := sub
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+del, curr[j-1]+ins, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return boundResult(prev[len(s2)], o)
}
