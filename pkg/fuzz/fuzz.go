/*
Package fuzz provides the normalized similarity scorers built on the
Indel distance: plain ratio, best-alignment partial ratio and the
token-based variants. All scores are in [0, 100].
*/
package fuzz

import (
	"fmt"

	"github.com/ljnsn/crustyfuzz/pkg/metrics"
	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// Option configures a scorer call.
type Option func(*options)

type options struct {
	processor   sequence.Processor
	scoreCutoff float64
	hasCutoff   bool
}

// WithProcessor applies a text transform to both inputs before scoring.
func WithProcessor(p sequence.Processor) Option {
	return func(o *options) { o.processor = p }
}

// WithScoreCutoff sets the minimum acceptable score in [0, 100];
// anything below collapses to 0.
func WithScoreCutoff(cutoff float64) Option {
	return func(o *options) {
		o.scoreCutoff = cutoff
		o.hasCutoff = true
	}
}

func buildOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasCutoff && (o.scoreCutoff < 0 || o.scoreCutoff > 100) {
		return o, fmt.Errorf("%w: score cutoff %v outside [0, 100]", metrics.ErrInvalidConfig, o.scoreCutoff)
	}
	return o, nil
}

func (o *options) convert(s1, s2 string) (sequence.Seq, sequence.Seq, error) {
	a, err := sequence.NewWith(s1, o.processor, sequence.Options{})
	if err != nil {
		return nil, nil, err
	}
	b, err := sequence.NewWith(s2, o.processor, sequence.Options{})
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// clamp applies the 0..100 cutoff to a final score.
func (o *options) clamp(score float64) float64 {
	if o.hasCutoff && score < o.scoreCutoff {
		return 0
	}
	return score
}

// cutoffFraction is the cutoff rescaled to [0, 1] for the normalized
// building blocks.
func (o *options) cutoffFraction() float64 {
	if !o.hasCutoff {
		return 0
	}
	return o.scoreCutoff / 100
}

// Ratio is the normalized Indel similarity of the two strings as a score
// in [0, 100]. Two empty strings score 100.
func Ratio(s1, s2 string, opts ...Option) (float64, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return 0, err
	}
	return o.clamp(metrics.IndelNormSim(a, b, o.cutoffFraction()) * 100), nil
}

// ScoreAlignment describes where the best partial alignment sits: the
// score plus the half-open unit ranges in the source and destination.
type ScoreAlignment struct {
	Score     float64
	SrcStart  int
	SrcEnd    int
	DestStart int
	DestEnd   int
}

// PartialRatio searches for the alignment of the shorter string in the
// longer one that maximizes Ratio, and returns that best score.
func PartialRatio(s1, s2 string, opts ...Option) (float64, error) {
	alignment, err := PartialRatioAlignment(s1, s2, opts...)
	if err != nil {
		return 0, err
	}
	if alignment == nil {
		return 0, nil
	}
	return alignment.Score, nil
}

// PartialRatioAlignment returns the best partial alignment, or nil when
// no alignment reaches the score cutoff.
func PartialRatioAlignment(s1, s2 string, opts ...Option) (*ScoreAlignment, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return nil, err
	}

	if len(a) == 0 && len(b) == 0 {
		return &ScoreAlignment{Score: 100}, nil
	}

	cutoff := o.scoreCutoff
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}

	res := partialRatioShortNeedle(shorter, longer, cutoff/100)

	// With equal lengths the roles are ambiguous; try the other way
	// around unless the first pass already maxed out.
	if res.Score != 100 && len(a) == len(b) {
		cutoff = max(cutoff, res.Score)
		res2 := partialRatioShortNeedle(longer, shorter, cutoff/100)
		if res2.Score > res.Score {
			res = ScoreAlignment{
				Score:     res2.Score,
				SrcStart:  res2.DestStart,
				SrcEnd:    res2.DestEnd,
				DestStart: res2.SrcStart,
				DestEnd:   res2.SrcEnd,
			}
		}
	}

	if o.hasCutoff && res.Score < o.scoreCutoff {
		return nil, nil
	}

	if len(a) <= len(b) {
		return &res, nil
	}
	// s1 was the longer side; swap the ranges back into its frame.
	return &ScoreAlignment{
		Score:     res.Score,
		SrcStart:  res.DestStart,
		SrcEnd:    res.DestEnd,
		DestStart: res.SrcStart,
		DestEnd:   res.SrcEnd,
	}, nil
}

// partialRatioShortNeedle scans every window of the longer string that
// could hold an optimal alignment of the needle: growing prefixes, full
// windows, then shrinking suffixes. The running best tightens the cutoff
// so later windows bail out early. Assumes len(s1) <= len(s2).
func partialRatioShortNeedle(s1, s2 sequence.Seq, scoreCutoff float64) ScoreAlignment {
	len1, len2 := len(s1), len(s2)

	res := ScoreAlignment{
		Score:   0,
		SrcEnd:  len1,
		DestEnd: len1,
	}
	if len1 == 0 {
		return res
	}

	charset := make(map[rune]struct{}, len1)
	for _, ch := range s1 {
		charset[ch] = struct{}{}
	}
	block := metrics.NewIndelBlock(s1)

	record := func(score float64, destStart, destEnd int) bool {
		if score > res.Score {
			scoreCutoff = score
			res.Score = score
			res.DestStart = destStart
			res.DestEnd = destEnd
			if score == 1 {
				res.Score = 100
				return true
			}
		}
		return false
	}

	// Windows only shift the score when their boundary unit occurs in
	// the needle at all, so anything else is skipped outright.
	for i := 1; i < len1 && i < len2; i++ {
		if _, ok := charset[s2[i-1]]; !ok {
			continue
		}
		if record(block.NormSim(s2[:i], scoreCutoff), 0, i) {
			return res
		}
	}

	for i := 0; i < len2-len1; i++ {
		if _, ok := charset[s2[i+len1-1]]; !ok {
			continue
		}
		if record(block.NormSim(s2[i:i+len1], scoreCutoff), i, i+len1) {
			return res
		}
	}

	for i := max(0, len2-len1); i < len2; i++ {
		if _, ok := charset[s2[i]]; !ok {
			continue
		}
		if record(block.NormSim(s2[i:], scoreCutoff), i, len2) {
			return res
		}
	}

	res.Score *= 100
	return res
}
