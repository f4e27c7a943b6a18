/*
Package metrics implements the pairwise distance and similarity family:
Levenshtein, Damerau-Levenshtein (restricted), Indel, LCS, Hamming, Jaro
and Jaro-Winkler.

The metric set is a closed enum dispatching to distinct algorithms, which
keeps the hot loops free of interface calls. Every computation is a pure
function over immutable sequences.

Score cutoffs and max-distance bounds only prune work: the accept/reject
outcome always matches a full computation compared afterwards. Distances
above a max-distance bound are reported as max+1.
*/
package metrics

import (
	"fmt"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// Metric selects a pairwise algorithm.
type Metric int

const (
	Levenshtein Metric = iota
	DamerauLevenshtein
	Indel
	LCSseq
	Hamming
	Jaro
	JaroWinkler
)

var metricNames = map[Metric]string{
	Levenshtein:        "levenshtein",
	DamerauLevenshtein: "damerau",
	Indel:              "indel",
	LCSseq:             "lcsseq",
	Hamming:            "hamming",
	Jaro:               "jaro",
	JaroWinkler:        "jaro_winkler",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// ParseMetric resolves a metric name as used by the CLI and server.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, name)
}

// supportsWeights reports whether custom per-operation costs apply.
func (m Metric) supportsWeights() bool {
	return m == Levenshtein
}

// Distance computes the raw distance between two strings under the given
// metric. For Jaro and Jaro-Winkler, which are similarity-native, the
// distance is 1 - similarity in [0, 1].
func Distance(s1, s2 string, m Metric, opts ...Option) (float64, error) {
	o, a, b, err := prepare(s1, s2, m, opts)
	if err != nil {
		return 0, err
	}
	return distanceSeq(a, b, m, &o)
}

// Similarity computes a normalized similarity ratio in [0, 100].
// Results below the score cutoff collapse to 0.
func Similarity(s1, s2 string, m Metric, opts ...Option) (float64, error) {
	o, a, b, err := prepare(s1, s2, m, opts)
	if err != nil {
		return 0, err
	}
	if o.hasCutoff && (o.scoreCutoff < 0 || o.scoreCutoff > 100) {
		return 0, fmt.Errorf("%w: score cutoff %v outside [0, 100]", ErrInvalidConfig, o.scoreCutoff)
	}
	norm, err := normalizedSimilaritySeq(a, b, m, &o)
	if err != nil {
		return 0, err
	}
	score := norm * 100
	if o.hasCutoff && score < o.scoreCutoff {
		return 0, nil
	}
	return score, nil
}

// NormalizedDistance computes a normalized distance in [0, 1].
func NormalizedDistance(s1, s2 string, m Metric, opts ...Option) (float64, error) {
	o, a, b, err := prepare(s1, s2, m, opts)
	if err != nil {
		return 0, err
	}
	if o.hasCutoff && (o.scoreCutoff < 0 || o.scoreCutoff > 1) {
		return 0, fmt.Errorf("%w: score cutoff %v outside [0, 1]", ErrInvalidConfig, o.scoreCutoff)
	}
	norm, err := normalizedSimilaritySeq(a, b, m, &o)
	if err != nil {
		return 0, err
	}
	dist := 1 - norm
	if o.hasCutoff && dist > o.scoreCutoff {
		return 1, nil
	}
	return dist, nil
}

// NormalizedSimilarity computes a normalized similarity in [0, 1].
func NormalizedSimilarity(s1, s2 string, m Metric, opts ...Option) (float64, error) {
	o, a, b, err := prepare(s1, s2, m, opts)
	if err != nil {
		return 0, err
	}
	if o.hasCutoff && (o.scoreCutoff < 0 || o.scoreCutoff > 1) {
		return 0, fmt.Errorf("%w: score cutoff %v outside [0, 1]", ErrInvalidConfig, o.scoreCutoff)
	}
	norm, err := normalizedSimilaritySeq(a, b, m, &o)
	if err != nil {
		return 0, err
	}
	if o.hasCutoff && norm < o.scoreCutoff {
		return 0, nil
	}
	return norm, nil
}

// prepare validates options and converts both inputs.
func prepare(s1, s2 string, m Metric, opts []Option) (options, sequence.Seq, sequence.Seq, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return o, nil, nil, err
	}
	if o.weighted && !m.supportsWeights() {
		return o, nil, nil, fmt.Errorf("%w: %s does not support custom weights", ErrInvalidConfig, m)
	}
	a, err := sequence.NewWith(s1, o.processor, o.seqOpts)
	if err != nil {
		return o, nil, nil, err
	}
	b, err := sequence.NewWith(s2, o.processor, o.seqOpts)
	if err != nil {
		return o, nil, nil, err
	}
	return o, a, b, nil
}

func distanceSeq(a, b sequence.Seq, m Metric, o *options) (float64, error) {
	switch m {
	case Levenshtein:
		if o.weighted {
			return levWeighted(a, b, o), nil
		}
		return levUniform(a, b, o), nil
	case DamerauLevenshtein:
		return osaDistance(a, b, o), nil
	case Indel:
		return indelDistance(a, b, o), nil
	case LCSseq:
		return lcsDistance(a, b, o), nil
	case Hamming:
		return hammingDistance(a, b, o)
	case Jaro:
		return 1 - jaroSimilarity(a, b), nil
	case JaroWinkler:
		return 1 - winklerSimilarity(a, b, o.prefixWeight), nil
	default:
		return 0, fmt.Errorf("%w: unknown metric %d", ErrInvalidConfig, int(m))
	}
}

// normalizedSimilaritySeq maps a raw distance into [0, 1] using the
// metric's maximum possible distance for the two lengths.
func normalizedSimilaritySeq(a, b sequence.Seq, m Metric, o *options) (float64, error) {
	switch m {
	case Jaro:
		return jaroSimilarity(a, b), nil
	case JaroWinkler:
		return winklerSimilarity(a, b, o.prefixWeight), nil
	}

	// Run the raw computation unbounded so normalization sees the true
	// distance; the cutoff is applied by the caller on the ratio.
	plain := *o
	plain.hasMax = false
	dist, err := distanceSeq(a, b, m, &plain)
	if err != nil {
		return 0, err
	}
	max := maximumDistance(len(a), len(b), m, o)
	if max == 0 {
		return 1, nil
	}
	return 1 - dist/max, nil
}

// maximumDistance is the largest distance the metric can report for the
// given lengths, used as the normalization denominator.
func maximumDistance(len1, len2 int, m Metric, o *options) float64 {
	l1, l2 := float64(len1), float64(len2)
	switch m {
	case Levenshtein:
		if !o.weighted {
			return max(l1, l2)
		}
		// Cheapest way to rewrite everything: either delete s1 and
		// insert s2 wholesale, or substitute along the shorter length.
		mn := min(l1, l2)
		wholesale := l1*o.deleteCost + l2*o.insertCost
		substitute := mn*o.subCost + (l1-mn)*o.deleteCost + (l2-mn)*o.insertCost
		return min(wholesale, substitute)
	case Indel:
		return l1 + l2
	case DamerauLevenshtein, LCSseq, Hamming:
		return max(l1, l2)
	default:
		return 1
	}
}

// boundResult applies the max-distance sentinel contract.
func boundResult(dist float64, o *options) float64 {
	if o.hasMax && dist > o.maxDistance {
		return o.maxDistance + 1
	}
	return dist
}
