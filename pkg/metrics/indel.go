package metrics

import "github.com/ljnsn/crustyfuzz/pkg/sequence"

// indelDistance is the insert/delete-only edit distance, equivalent to
// Levenshtein with substitution cost 2:
//
//	len1 + len2 - 2*LCS(s1, s2)
func indelDistance(s1, s2 sequence.Seq, o *options) float64 {
	lenDiff := len(s1) - len(s2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if o.hasMax && float64(lenDiff) > o.maxDistance {
		return o.maxDistance + 1
	}
	dist := float64(len(s1) + len(s2) - 2*lcsLength(s1, s2))
	return boundResult(dist, o)
}

// IndelNormSim is the normalized Indel similarity in [0, 1] over raw
// sequences. Results below cutoff collapse to 0. This is the building
// block behind fuzz.Ratio.
func IndelNormSim(s1, s2 sequence.Seq, cutoff float64) float64 {
	maximum := float64(len(s1) + len(s2))
	if maximum == 0 {
		return 1
	}
	dist := float64(len(s1) + len(s2) - 2*lcsLength(s1, s2))
	sim := 1 - dist/maximum
	if sim < cutoff {
		return 0
	}
	return sim
}

// IndelBlock hoists the pattern's match vectors so one needle can be
// scored against many text windows without rebuilding state.
type IndelBlock struct {
	pattern sequence.Seq
	pb      *patternBlock
	peq     map[rune]uint64
}

// NewIndelBlock precomputes match vectors for the needle.
func NewIndelBlock(pattern sequence.Seq) *IndelBlock {
	b := &IndelBlock{pattern: pattern}
	if len(pattern) <= maxMyersLen {
		b.peq = patternMasks64(pattern)
	} else {
		b.pb = newPatternBlock(pattern)
	}
	return b
}

// NormSim scores the needle against one window, like IndelNormSim.
func (b *IndelBlock) NormSim(window sequence.Seq, cutoff float64) float64 {
	maximum := float64(len(b.pattern) + len(window))
	if maximum == 0 {
		return 1
	}
	var lcs int
	if len(b.pattern) == 0 || len(window) == 0 {
		lcs = 0
	} else if b.peq != nil {
		lcs = lcsLength64(b.peq, len(b.pattern), window)
	} else {
		lcs = b.pb.lcsLength(window)
	}
	dist := float64(len(b.pattern) + len(window) - 2*lcs)
	sim := 1 - dist/maximum
	if sim < cutoff {
		return 0
	}
	return sim
}
