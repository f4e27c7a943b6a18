package metrics

import (
	"math/bits"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// The LCS length is computed bit-parallel: with S holding one bit per
// pattern unit (initially all ones) and M the match vector of the current
// text unit, each step is
//
//	U = S & M
//	S = (S + U) | (S - U)
//
// and the zeros left in S afterwards count the longest common subsequence.
// Patterns wider than one machine word use a little-endian []uint64 with
// explicit carry/borrow propagation.

// lcsLength returns the length of the longest common subsequence, with
// s1 as the pattern.
func lcsLength(s1, s2 sequence.Seq) int {
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	// The subsequence length is symmetric; keep the narrow side as the
	// pattern so it fits a single word more often.
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	if len(s1) <= maxMyersLen {
		return lcsLength64(patternMasks64(s1), len(s1), s2)
	}
	return newPatternBlock(s1).lcsLength(s2)
}

func lcsLength64(peq map[rune]uint64, len1 int, s2 sequence.Seq) int {
	s := lowMask64(len1)
	for _, ch := range s2 {
		m := peq[ch]
		u := s & m
		s = (s + u) | (s - u)
	}
	return len1 - bits.OnesCount64(s&lowMask64(len1))
}

// lowMask64 has the low n bits set; n == 64 yields all ones since Go
// defines shifts >= width as zero.
func lowMask64(n int) uint64 {
	return (uint64(1) << uint(n)) - 1
}

// patternBlock holds hoisted match vectors for one pattern so sliding
// comparisons against many text windows skip rebuilding them.
type patternBlock struct {
	len1  int
	words int
	masks map[rune][]uint64
}

func newPatternBlock(p sequence.Seq) *patternBlock {
	words := (len(p) + maxMyersLen - 1) / maxMyersLen
	if words == 0 {
		words = 1
	}
	b := &patternBlock{
		len1:  len(p),
		words: words,
		masks: make(map[rune][]uint64, len(p)),
	}
	for i, r := range p {
		m := b.masks[r]
		if m == nil {
			m = make([]uint64, words)
			b.masks[r] = m
		}
		m[i/maxMyersLen] |= 1 << uint(i%maxMyersLen)
	}
	return b
}

func (b *patternBlock) lcsLength(s2 sequence.Seq) int {
	if b.len1 == 0 || len(s2) == 0 {
		return 0
	}

	// S starts as all ones over the pattern width.
	s := make([]uint64, b.words)
	for w := range s {
		s[w] = ^uint64(0)
	}
	top := b.len1 % maxMyersLen
	if top != 0 {
		s[b.words-1] = lowMask64(top)
	}

	u := make([]uint64, b.words)
	sum := make([]uint64, b.words)
	diff := make([]uint64, b.words)

	for _, ch := range s2 {
		m := b.masks[ch]
		if m == nil {
			continue
		}
		for w := range s {
			u[w] = s[w] & m[w]
		}

		var carry, borrow uint64
		for w := range s {
			sw, c1 := bits.Add64(s[w], u[w], carry)
			sum[w] = sw
			carry = c1
			dw, b1 := bits.Sub64(s[w], u[w], borrow)
			diff[w] = dw
			borrow = b1
		}
		for w := range s {
			s[w] = sum[w] | diff[w]
		}
	}

	ones := 0
	for w := 0; w < b.words-1; w++ {
		ones += bits.OnesCount64(s[w])
	}
	last := s[b.words-1]
	if top != 0 {
		last &= lowMask64(top)
	}
	ones += bits.OnesCount64(last)
	return b.len1 - ones
}

// lcsDistance is max(len1, len2) - lcs, the number of units that must be
// inserted or removed when only the subsequence is kept.
func lcsDistance(s1, s2 sequence.Seq, o *options) float64 {
	longer := max(len(s1), len(s2))
	shorter := min(len(s1), len(s2))
	if o.hasMax && float64(longer-shorter) > o.maxDistance {
		return o.maxDistance + 1
	}
	dist := float64(longer - lcsLength(s1, s2))
	return boundResult(dist, o)
}
