package metrics

import (
	"fmt"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

// Option configures a single metric computation.
type Option func(*options)

type options struct {
	insertCost   float64
	deleteCost   float64
	subCost      float64
	weighted     bool
	maxDistance  float64
	hasMax       bool
	scoreCutoff  float64
	hasCutoff    bool
	prefixWeight float64
	padding      bool
	processor    sequence.Processor
	seqOpts      sequence.Options
}

func defaultOptions() options {
	return options{
		insertCost:   1,
		deleteCost:   1,
		subCost:      1,
		prefixWeight: winklerDefaultWeight,
	}
}

// WithWeights sets per-operation costs for insert, delete and substitute.
// The default is (1, 1, 1).
func WithWeights(insert, delete, substitute float64) Option {
	return func(o *options) {
		o.insertCost = insert
		o.deleteCost = delete
		o.subCost = substitute
		o.weighted = insert != 1 || delete != 1 || substitute != 1
	}
}

// WithMaxDistance bounds a raw-distance computation. Distances above the
// bound are reported as max+1 instead of computed exactly, which enables
// banded pruning.
func WithMaxDistance(max float64) Option {
	return func(o *options) {
		o.maxDistance = max
		o.hasMax = true
	}
}

// WithScoreCutoff sets a minimum acceptable similarity (0..100 for
// Similarity, 0..1 for NormalizedSimilarity). Results below the cutoff
// collapse to 0.
func WithScoreCutoff(cutoff float64) Option {
	return func(o *options) {
		o.scoreCutoff = cutoff
		o.hasCutoff = true
	}
}

// WithPrefixWeight sets the Jaro-Winkler prefix bonus scale factor.
// The default is 0.1; values above 0.25 are rejected since they can push
// the similarity past 1.
func WithPrefixWeight(w float64) Option {
	return func(o *options) { o.prefixWeight = w }
}

// WithPadding enables the Hamming padding policy: the shorter sequence is
// treated as padded with units that never match.
func WithPadding(pad bool) Option {
	return func(o *options) { o.padding = pad }
}

// WithProcessor applies a text transform to both inputs before comparison.
func WithProcessor(p sequence.Processor) Option {
	return func(o *options) { o.processor = p }
}

// WithSequenceOptions sets the built-in normalization applied after the
// processor (case folding, alphanumeric filtering).
func WithSequenceOptions(so sequence.Options) Option {
	return func(o *options) { o.seqOpts = so }
}

// validate rejects bad configuration at call entry, before any work.
func (o *options) validate() error {
	if o.insertCost < 0 || o.deleteCost < 0 || o.subCost < 0 {
		return fmt.Errorf("%w: negative operation weight", ErrInvalidConfig)
	}
	if o.hasMax && o.maxDistance < 0 {
		return fmt.Errorf("%w: negative max distance", ErrInvalidConfig)
	}
	if o.prefixWeight < 0 || o.prefixWeight > 0.25 {
		return fmt.Errorf("%w: prefix weight %v outside [0, 0.25]", ErrInvalidConfig, o.prefixWeight)
	}
	return nil
}
