// Package correct suggests spelling corrections from a weighted word
// list. Exact and prefix lookups short-circuit through a patricia trie;
// only genuine misspellings pay for fuzzy ranking.
//
// Preference order: exact match first, then similarity with a capped
// frequency bonus and a penalty for length difference.
package correct

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/ljnsn/crustyfuzz/internal/utils"
	"github.com/ljnsn/crustyfuzz/pkg/fuzz"
	"github.com/ljnsn/crustyfuzz/pkg/metrics"
)

const (
	// maxEditDistance bounds how far a correction may stray.
	maxEditDistance = 2
	// freqBonusCap keeps frequency from dominating similarity.
	freqBonusCap = 30
	// lengthPenalty per unit of length difference.
	lengthPenalty = 2
)

// Corrector holds the dictionary in both trie and slice form: the trie
// answers exact/prefix probes, the slice feeds the fuzzy scan.
type Corrector struct {
	trie  *patricia.Trie
	words []string
}

// NewCorrector builds a corrector from a word -> frequency dictionary.
func NewCorrector(words map[string]int) *Corrector {
	c := &Corrector{trie: patricia.NewTrie()}
	for word, freq := range words {
		c.AddWord(word, freq)
	}
	return c
}

// AddWord inserts a word; words are stored lowercased.
func (c *Corrector) AddWord(word string, frequency int) {
	lower := strings.ToLower(word)
	if c.trie.Insert(patricia.Prefix(lower), frequency) {
		c.words = append(c.words, lower)
	}
}

// Frequency returns the stored frequency, 0 when absent.
func (c *Corrector) Frequency(word string) int {
	item := c.trie.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return 0
	}
	return item.(int)
}

// Suggest returns the most likely correction for a potentially
// misspelled word and whether a correction was applied. Inputs shorter
// than three units, purely numeric or repetitive inputs, exact
// dictionary words and inputs with no close candidate come back
// unchanged.
func (c *Corrector) Suggest(input string) (string, bool) {
	if len(input) < 3 {
		return input, false
	}
	// Numbers and keyboard mashing are not misspellings.
	if utils.IsOnlyNumbers(input) || utils.IsRepetitive(input) {
		return input, false
	}

	lowerInput := strings.ToLower(input)
	if c.trie.Get(patricia.Prefix(lowerInput)) != nil {
		return lowerInput, false
	}

	best := ""
	bestScore := 0.0
	for _, word := range c.words {
		// First-letter heuristic: corrections almost never change the
		// leading character.
		if word == "" || word[0] != lowerInput[0] {
			continue
		}

		dist, err := metrics.Distance(lowerInput, word, metrics.DamerauLevenshtein,
			metrics.WithMaxDistance(maxEditDistance))
		if err != nil || dist > maxEditDistance {
			continue
		}

		score, err := fuzz.Ratio(lowerInput, word)
		if err != nil {
			continue
		}
		score += float64(min(c.Frequency(word)/10, freqBonusCap))
		lengthDiff := len(word) - len(lowerInput)
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		score -= float64(lengthDiff * lengthPenalty)

		if score > bestScore {
			bestScore = score
			best = word
		}
	}

	if best == "" {
		return input, false
	}
	return best, true
}
