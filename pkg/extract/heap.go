package extract

import "container/heap"

// topK keeps the best `limit` results while scanning arbitrarily many
// candidates: a fixed-capacity min-heap whose root is the current worst
// kept result. Beats sort-everything-then-truncate when the candidate
// count dwarfs the limit.
type topK struct {
	items resultHeap
	limit int
}

func newTopK(limit int) *topK {
	return &topK{limit: limit}
}

// offer considers one result for the kept set.
func (t *topK) offer(r Result) {
	if t.limit <= 0 {
		t.items = append(t.items, r)
		return
	}
	if len(t.items) < t.limit {
		heap.Push(&t.items, r)
		return
	}
	if betterThan(r, t.items[0]) {
		t.items[0] = r
		heap.Fix(&t.items, 0)
	}
}

// drain returns the kept results ordered best-first.
func (t *topK) drain() []Result {
	if t.limit <= 0 {
		sortResults(t.items)
		return t.items
	}
	out := make([]Result, len(t.items))
	for i := len(t.items) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.items).(Result)
	}
	return out
}

// betterThan ranks by descending score, then by original input order.
func betterThan(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

type resultHeap []Result

func (h resultHeap) Len() int { return len(h) }

// Less keeps the worst result at the root.
func (h resultHeap) Less(i, j int) bool { return betterThan(h[j], h[i]) }

func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) { *h = append(*h, x.(Result)) }

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
