/*
Package extract is the batch engine: it scores one query against many
candidate choices under a chosen scorer, filters by cutoff and returns
the top-K ranked matches.

Candidates are independent, so large collections are partitioned across
workers that each keep a local bounded top-K, merged in a final
reduction. Cancellation is checked between candidates, never inside a
metric.
*/
package extract

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/ljnsn/crustyfuzz/internal/logger"
	"github.com/ljnsn/crustyfuzz/pkg/fuzz"
	"github.com/ljnsn/crustyfuzz/pkg/metrics"
	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

var log = logger.New("extract")

// Scorer computes a similarity in [0, 100] between the processed query
// and one processed choice. The cutoff is forwarded so implementations
// can prune; 0 means no cutoff.
type Scorer func(query, choice string, scoreCutoff float64) (float64, error)

// Result is one ranked match.
type Result struct {
	// Choice is the original (unprocessed) candidate.
	Choice string
	// Score in [0, 100].
	Score float64
	// Index of the candidate in the input collection.
	Index int
}

// Stats summarizes a batch run, including candidates skipped because
// their processing or scoring failed.
type Stats struct {
	Evaluated int
	Skipped   int
	Kept      int
}

// Option configures a batch extraction.
type Option func(*options)

type options struct {
	scorer      Scorer
	processor   sequence.Processor
	scoreCutoff float64
	hasCutoff   bool
	limit       int
	workers     int
}

// WithScorer selects the scoring function. Default is fuzz.WRatio.
func WithScorer(s Scorer) Option {
	return func(o *options) { o.scorer = s }
}

// WithProcessor transforms the query and every choice before scoring.
func WithProcessor(p sequence.Processor) Option {
	return func(o *options) { o.processor = p }
}

// WithScoreCutoff drops candidates scoring below the cutoff (0..100).
func WithScoreCutoff(cutoff float64) Option {
	return func(o *options) {
		o.scoreCutoff = cutoff
		o.hasCutoff = true
	}
}

// WithLimit keeps only the best k results. 0 keeps everything.
func WithLimit(k int) Option {
	return func(o *options) { o.limit = k }
}

// WithWorkers sets the parallelism. Default is runtime.NumCPU();
// 1 forces a sequential scan.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Scorers maps wire/CLI names to the fuzz scorers.
var Scorers = map[string]Scorer{
	"ratio":            adapt(fuzz.Ratio),
	"partial_ratio":    adapt(fuzz.PartialRatio),
	"token_sort_ratio": adapt(fuzz.TokenSortRatio),
	"token_set_ratio":  adapt(fuzz.TokenSetRatio),
	"token_ratio":      adapt(fuzz.TokenRatio),
	"wratio":           adapt(fuzz.WRatio),
}

func adapt(f func(s1, s2 string, opts ...fuzz.Option) (float64, error)) Scorer {
	return func(query, choice string, scoreCutoff float64) (float64, error) {
		if scoreCutoff > 0 {
			return f(query, choice, fuzz.WithScoreCutoff(scoreCutoff))
		}
		return f(query, choice)
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{
		scorer:  Scorers["wratio"],
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.limit < 0 {
		return o, fmt.Errorf("%w: limit %d must not be negative", metrics.ErrInvalidConfig, o.limit)
	}
	if o.hasCutoff && (o.scoreCutoff < 0 || o.scoreCutoff > 100) {
		return o, fmt.Errorf("%w: score cutoff %v outside [0, 100]", metrics.ErrInvalidConfig, o.scoreCutoff)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o, nil
}

// Extract scores every choice and returns matches above the cutoff,
// sorted by descending score with ties broken by input order.
func Extract(ctx context.Context, query string, choices []string, opts ...Option) ([]Result, error) {
	results, _, err := ExtractWithStats(ctx, query, choices, opts...)
	return results, err
}

// ExtractWithStats is Extract plus a summary of skipped candidates, so
// per-candidate failures stay observable without failing the batch.
func ExtractWithStats(ctx context.Context, query string, choices []string, opts ...Option) ([]Result, Stats, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, Stats{}, err
	}

	// Process the query once up front; a bad query fails the batch.
	q, err := sequence.NewWith(query, o.processor, sequence.Options{})
	if err != nil {
		return nil, Stats{}, fmt.Errorf("processing query: %w", err)
	}
	processedQuery := q.String()

	workers := o.workers
	if workers > len(choices) {
		workers = len(choices)
	}
	if workers <= 1 {
		return extractChunk(ctx, processedQuery, choices, 0, &o)
	}

	// Contiguous chunks keep original indexes intact for tie-breaking.
	chunkSize := (len(choices) + workers - 1) / workers
	var wg sync.WaitGroup
	partials := make([][]Result, workers)
	stats := make([]Stats, workers)
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, len(choices))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			partials[w], stats[w], errs[w] = extractChunk(ctx, processedQuery, choices[start:end], start, &o)
		}(w, start, end)
	}
	wg.Wait()

	var total Stats
	merged := newTopK(o.limit)
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return nil, Stats{}, errs[w]
		}
		total.Evaluated += stats[w].Evaluated
		total.Skipped += stats[w].Skipped
		for _, r := range partials[w] {
			merged.offer(r)
		}
	}
	results := merged.drain()
	total.Kept = len(results)
	return results, total, nil
}

// extractChunk scans one contiguous slice of candidates sequentially.
// indexOffset restores positions in the full input collection.
func extractChunk(ctx context.Context, query string, choices []string, indexOffset int, o *options) ([]Result, Stats, error) {
	var stats Stats
	kept := newTopK(o.limit)

	for i, choice := range choices {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, stats, ctx.Err()
			default:
			}
		}
		stats.Evaluated++

		c, err := sequence.NewWith(choice, o.processor, sequence.Options{})
		if err != nil {
			stats.Skipped++
			log.Debugf("skipping candidate %d: %v", indexOffset+i, err)
			continue
		}

		score, err := o.scorer(query, c.String(), o.scoreCutoffOrZero())
		if err != nil {
			stats.Skipped++
			log.Debugf("skipping candidate %d: scorer failed: %v", indexOffset+i, err)
			continue
		}
		if o.hasCutoff && score < o.scoreCutoff {
			continue
		}
		kept.offer(Result{Choice: choice, Score: score, Index: indexOffset + i})
	}

	results := kept.drain()
	stats.Kept = len(results)
	return results, stats, nil
}

// ExtractOne returns the single best match, or ok=false when nothing
// passes the cutoff.
func ExtractOne(ctx context.Context, query string, choices []string, opts ...Option) (Result, bool, error) {
	results, err := Extract(ctx, query, choices, append(opts, WithLimit(1))...)
	if err != nil {
		return Result{}, false, err
	}
	if len(results) == 0 {
		return Result{}, false, nil
	}
	return results[0], true, nil
}

func (o *options) scoreCutoffOrZero() float64 {
	if !o.hasCutoff {
		return 0
	}
	return o.scoreCutoff
}

func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return betterThan(results[i], results[j])
	})
}
