package fuzz

import (
	"sort"
	"strings"
)

// Token scorers compare whitespace-delimited words instead of raw unit
// order, which makes them robust against reordered phrases
// ("new york mets" vs "mets new york").

func sortedTokens(s string) []string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return tokens
}

func tokenSortJoin(s string) string {
	return strings.Join(sortedTokens(s), " ")
}

// TokenSortRatio sorts the words in both strings and scores the joined
// results with Ratio.
func TokenSortRatio(s1, s2 string, opts ...Option) (float64, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return 0, err
	}
	return Ratio(tokenSortJoin(a.String()), tokenSortJoin(b.String()), WithScoreCutoff(o.scoreCutoffOrZero()))
}

// TokenSetRatio compares the intersection of the two word sets against
// each side's remainder and returns the best of the three pairings.
// Shared words dominate: if one side's words are a subset of the
// other's, the score is 100.
func TokenSetRatio(s1, s2 string, opts ...Option) (float64, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return 0, err
	}
	return o.clamp(tokenSetRatio(a.String(), b.String())), nil
}

func tokenSetRatio(s1, s2 string) float64 {
	set1 := make(map[string]struct{})
	for _, t := range strings.Fields(s1) {
		set1[t] = struct{}{}
	}
	set2 := make(map[string]struct{})
	for _, t := range strings.Fields(s2) {
		set2[t] = struct{}{}
	}
	if len(set1) == 0 && len(set2) == 0 {
		return 100
	}

	var inter, diff1, diff2 []string
	for t := range set1 {
		if _, ok := set2[t]; ok {
			inter = append(inter, t)
		} else {
			diff1 = append(diff1, t)
		}
	}
	for t := range set2 {
		if _, ok := set1[t]; !ok {
			diff2 = append(diff2, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diff1)
	sort.Strings(diff2)

	if len(inter) > 0 && (len(diff1) == 0 || len(diff2) == 0) {
		return 100
	}

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(diff1, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(diff2, " "))

	best, _ := Ratio(t0, t1)
	if r, _ := Ratio(t0, t2); r > best {
		best = r
	}
	if r, _ := Ratio(t1, t2); r > best {
		best = r
	}
	return best
}

// TokenRatio is the maximum of TokenSortRatio and TokenSetRatio.
func TokenRatio(s1, s2 string, opts ...Option) (float64, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return 0, err
	}
	sortScore, err := Ratio(tokenSortJoin(a.String()), tokenSortJoin(b.String()))
	if err != nil {
		return 0, err
	}
	return o.clamp(max(sortScore, tokenSetRatio(a.String(), b.String()))), nil
}

// partialTokenRatio is the partial-alignment analogue of TokenRatio.
func partialTokenRatio(s1, s2 string) float64 {
	sortScore, _ := PartialRatio(tokenSortJoin(s1), tokenSortJoin(s2))

	// Set variant: any shared word means a perfect partial alignment.
	set1 := make(map[string]struct{})
	for _, t := range strings.Fields(s1) {
		set1[t] = struct{}{}
	}
	for _, t := range strings.Fields(s2) {
		if _, ok := set1[t]; ok {
			return 100
		}
	}
	return sortScore
}

// Weighting constants for WRatio, tuned the same way the classic
// fuzzywuzzy implementation tunes them.
const (
	unbaseScale      = 0.95
	partialScaleMid  = 0.9
	partialScaleFar  = 0.6
	lenRatioPartial  = 1.5
	lenRatioFarApart = 8.0
)

// WRatio combines Ratio with the token and partial variants, weighting
// them by how different the input lengths are. This is the default
// scorer for batch extraction.
func WRatio(s1, s2 string, opts ...Option) (float64, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return 0, err
	}
	a, b, err := o.convert(s1, s2)
	if err != nil {
		return 0, err
	}
	p1, p2 := a.String(), b.String()

	base, err := Ratio(p1, p2)
	if err != nil {
		return 0, err
	}
	len1, len2 := len(a), len(b)
	if len1 == 0 || len2 == 0 {
		return o.clamp(base), nil
	}

	lenRatio := float64(max(len1, len2)) / float64(min(len1, len2))
	if lenRatio < lenRatioPartial {
		sortScore, err := Ratio(tokenSortJoin(p1), tokenSortJoin(p2))
		if err != nil {
			return 0, err
		}
		tokenScore := max(sortScore, tokenSetRatio(p1, p2))
		return o.clamp(max(base, tokenScore*unbaseScale)), nil
	}

	partialScale := partialScaleMid
	if lenRatio >= lenRatioFarApart {
		partialScale = partialScaleFar
	}
	partial, err := PartialRatio(p1, p2)
	if err != nil {
		return 0, err
	}
	score := max(base, partial*partialScale)
	score = max(score, partialTokenRatio(p1, p2)*unbaseScale*partialScale)
	return o.clamp(score), nil
}

func (o *options) scoreCutoffOrZero() float64 {
	if !o.hasCutoff {
		return 0
	}
	return o.scoreCutoff
}
