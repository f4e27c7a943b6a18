package metrics

import "github.com/ljnsn/crustyfuzz/pkg/sequence"

// osaDistance is the restricted Damerau-Levenshtein distance (optimal
// string alignment): insert, delete, substitute plus a single adjacent
// transposition, where no substring is edited twice. Three rolling rows,
// never the full grid.
func osaDistance(s1, s2 sequence.Seq, o *options) float64 {
	if s1.Equal(s2) {
		return 0
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	if o.hasMax && float64(len(s2)-len(s1)) > o.maxDistance {
		return o.maxDistance + 1
	}
	if len(s1) == 0 {
		return boundResult(float64(len(s2)), o)
	}

	prev2 := make([]int, len(s1)+1)
	prev := make([]int, len(s1)+1)
	curr := make([]int, len(s1)+1)
	for i := 0; i <= len(s1); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(s2); j++ {
		ch2 := s2[j-1]
		curr[0] = j
		for i := 1; i <= len(s1); i++ {
			cost := 1
			if s1[i-1] == ch2 {
				cost = 0
			}
			d := min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
			if i > 1 && j > 1 && s1[i-1] == s2[j-2] && s1[i-2] == ch2 {
				d = min(d, prev2[i-2]+1)
			}
			curr[i] = d
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return boundResult(float64(prev[len(s1)]), o)
}
