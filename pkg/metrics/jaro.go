package metrics

import "github.com/ljnsn/crustyfuzz/pkg/sequence"

const (
	// winklerDefaultWeight is the Winkler prefix bonus scale factor.
	winklerDefaultWeight = 0.1
	// winklerMaxPrefix caps how many agreeing leading units earn a bonus.
	winklerMaxPrefix = 4
	// winklerBoostThreshold: the prefix bonus only applies to pairs that
	// are already reasonably similar.
	winklerBoostThreshold = 0.7
)

// jaroSimilarity computes the Jaro similarity in [0, 1] via matching
// window alignment and transposition counting.
func jaroSimilarity(s1, s2 sequence.Seq) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 1
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	if len(s1) == 1 && len(s2) == 1 {
		if s1[0] == s2[0] {
			return 1
		}
		return 0
	}

	window := max(len(s1), len(s2))/2 - 1
	if window < 0 {
		window = 0
	}

	matched1 := make([]bool, len(s1))
	matched2 := make([]bool, len(s2))
	matches := 0

	for i := range s1 {
		lo := max(0, i-window)
		hi := min(len(s2)-1, i+window)
		for j := lo; j <= hi; j++ {
			if !matched2[j] && s1[i] == s2[j] {
				matched1[i] = true
				matched2[j] = true
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0
	}

	// Count transposed pairs among the matched units.
	transpositions := 0
	j := 0
	for i := range s1 {
		if !matched1[i] {
			continue
		}
		for !matched2[j] {
			j++
		}
		if s1[i] != s2[j] {
			transpositions++
		}
		j++
	}
	transpositions /= 2

	m := float64(matches)
	return (m/float64(len(s1)) + m/float64(len(s2)) + (m-float64(transpositions))/m) / 3
}

// winklerSimilarity applies Winkler's prefix bonus to the Jaro
// similarity: agreeing leading units (up to 4) pull the score towards 1
// scaled by prefixWeight, for pairs above the boost threshold.
func winklerSimilarity(s1, s2 sequence.Seq, prefixWeight float64) float64 {
	sim := jaroSimilarity(s1, s2)
	if sim <= winklerBoostThreshold {
		return sim
	}

	prefix := 0
	limit := min(min(len(s1), len(s2)), winklerMaxPrefix)
	for prefix < limit && s1[prefix] == s2[prefix] {
		prefix++
	}
	return sim + float64(prefix)*prefixWeight*(1-sim)
}
