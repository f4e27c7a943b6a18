package metrics

import "github.com/ljnsn/crustyfuzz/pkg/sequence"

// maxMyersLen is the longest pattern the single-word bit-parallel path
// can represent. Longer inputs fall back to the rolling DP.
const maxMyersLen = 64

// distanceMyers64 computes the Levenshtein distance with Myers' bit-vector
// algorithm for patterns of up to 64 units.
// Reference: Hyyrö, H. (2001). "Explaining and extending the bit-parallel
// approximate string matching algorithm of Myers".
func distanceMyers64(s1, s2 sequence.Seq) int {
	len1 := len(s1)

	peq := patternMasks64(s1)

	// VP and VN: vertical positive and negative delta vectors.
	// Initially D[i,0] = i, so every vertical delta is +1.
	vp := ^uint64(0)
	vn := uint64(0)

	score := len1
	mask := uint64(1) << (len1 - 1)

	for _, ch := range s2 {
		pm := peq[ch]

		xv := pm | vn
		d0 := ((vp + (xv & vp)) ^ vp) | xv
		hn := vp & d0
		hp := vn | ^(d0 | vp)

		xh := (hp << 1) | 1
		vn = xh & d0
		vp = (hn << 1) | ^(xh | d0)

		if hp&mask != 0 {
			score++
		}
		if hn&mask != 0 {
			score--
		}
	}

	return score
}

// patternMasks64 builds the per-unit match vectors for the pattern: bit i
// is set in peq[u] when s1[i] == u.
func patternMasks64(s1 sequence.Seq) map[rune]uint64 {
	peq := make(map[rune]uint64, len(s1))
	for i, r := range s1 {
		peq[r] |= 1 << uint(i)
	}
	return peq
}
