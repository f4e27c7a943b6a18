package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

// check if the uniform edit distance returns the expected counts
func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"book", "back", 2},
		{"book", "books", 1},
		{"hello", "hallo", 1},
		{"flaw", "lawn", 2},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			dist, err := Distance(tc.a, tc.b, Levenshtein)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("Expected distance %v, got %v", tc.expected, dist)
			}
		})
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	sim, err := Similarity("kitten", "sitting", Levenshtein)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1 - 3/7 scaled to 100
	if !approx(sim, 57.142857) {
		t.Errorf("Expected ~57.1429, got %v", sim)
	}
}

// distances above the bound must come back as bound+1, everything at or
// below must match the full computation
func TestLevenshteinMaxDistance(t *testing.T) {
	testCases := []struct {
		max      float64
		expected float64
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 3},
		{10, 3},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("max=%v", tc.max), func(t *testing.T) {
			dist, err := Distance("kitten", "sitting", Levenshtein, WithMaxDistance(tc.max))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, dist)
			}
		})
	}
}

// the bit-parallel path handles patterns up to 64 units; the row DP takes
// over beyond that. Both must agree around the boundary.
func TestLevenshteinAcrossWordBoundary(t *testing.T) {
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	for _, n := range []int{8, 63, 64, 65, 100} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < n; i++ {
				b.WriteByte(alphabet[i%len(alphabet)])
			}
			s1 := b.String()
			r := []rune(s1)
			r[5] = '#'
			s2 := string(r) + "@"

			dist, err := Distance(s1, s2, Levenshtein)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != 2 {
				t.Errorf("Expected distance 2, got %v", dist)
			}
		})
	}
}

// long equal-length inputs with a bound exercise the banded DP; the
// outcome must be transparent against the unbounded distance
func TestLevenshteinBandedTransparency(t *testing.T) {
	s1 := strings.Repeat("abcdefgh", 10)
	r := []rune(s1)
	r[10], r[40], r[70] = '#', '@', '%'
	s2 := string(r)

	full, err := Distance(s1, s2, Levenshtein)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full != 3 {
		t.Fatalf("Expected full distance 3, got %v", full)
	}

	for c := 0.0; c <= 5; c++ {
		bounded, err := Distance(s1, s2, Levenshtein, WithMaxDistance(c))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := full
		if full > c {
			expected = c + 1
		}
		if bounded != expected {
			t.Errorf("max=%v: expected %v, got %v", c, expected, bounded)
		}
	}
}

func TestWeightedLevenshtein(t *testing.T) {
	testCases := []struct {
		insert      float64
		delete      float64
		substitute  float64
		expected    float64
		description string
	}{
		{1, 1, 1, 3, "Uniform weights"},
		{1, 1, 2, 5, "Substitution as delete plus insert"},
		{2, 2, 1, 4, "Cheap substitutions"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dist, err := Distance("kitten", "sitting", Levenshtein,
				WithWeights(tc.insert, tc.delete, tc.substitute))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, dist)
			}
		})
	}
}

func TestDamerauDistance(t *testing.T) {
	testCases := []struct {
		a           string
		b           string
		expected    float64
		description string
	}{
		{"apple", "apple", 0, "Equal"},
		{"appel", "apple", 1, "Adjacent transposition"},
		{"ab", "ba", 1, "Swap only"},
		{"ca", "abc", 3, "No edits on transposed units"},
		{"kitten", "sitting", 3, "Falls back to plain edits"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dist, err := Distance(tc.a, tc.b, DamerauLevenshtein)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("%s→%s: expected %v, got %v", tc.a, tc.b, tc.expected, dist)
			}
		})
	}
}

func TestIndelDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"lewenstein", "levenshtein", 3},
		{"kitten", "sitting", 5},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			dist, err := Distance(tc.a, tc.b, Indel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, dist)
			}
		})
	}

	sim, err := NormalizedSimilarity("lewenstein", "levenshtein", Indel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(sim, 1-3.0/21) {
		t.Errorf("Expected ~%v, got %v", 1-3.0/21, sim)
	}
}

func TestLCSseqDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"agcat", "gac", 3},
		{"abcde", "abcde", 0},
		{"abc", "def", 3},
		{"this is a test", "this is a test!", 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			dist, err := Distance(tc.a, tc.b, LCSseq)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, dist)
			}
		})
	}
}

// patterns wider than 64 units use the multi-word bitset
func TestLCSseqWidePattern(t *testing.T) {
	s1 := strings.Repeat("abcdefghij", 10)
	r := []rune(s1)
	r[3], r[50], r[97] = '#', '@', '%'
	s2 := string(r)

	// 3 substituted units drop out of the common subsequence
	dist, err := Distance(s1, s2, LCSseq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist != 3 {
		t.Errorf("Expected distance 3, got %v", dist)
	}
}

func TestHammingDistance(t *testing.T) {
	dist, err := Distance("karolin", "kathrin", Hamming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist != 3 {
		t.Errorf("Expected 3, got %v", dist)
	}

	_, err = Distance("abc", "ab", Hamming)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}

	// padding counts the length difference as mismatches
	dist, err = Distance("abcd", "abc", Hamming, WithPadding(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist != 1 {
		t.Errorf("Expected 1 with padding, got %v", dist)
	}
}

func TestJaroSimilarity(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		{"martha", "marhta", 0.944444},
		{"dwayne", "duane", 0.822222},
		{"", "", 1},
		{"abc", "", 0},
		{"a", "a", 1},
		{"a", "b", 0},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			sim, err := NormalizedSimilarity(tc.a, tc.b, Jaro)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(sim, tc.expected) {
				t.Errorf("Expected ~%v, got %v", tc.expected, sim)
			}
		})
	}
}

func TestJaroWinklerSimilarity(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected float64
	}{
		// shared prefixes push past plain jaro
		{"martha", "marhta", 0.961111},
		{"dwayne", "duane", 0.84},
		// below the boost threshold the prefix bonus never applies
		{"abcd", "wxyz", 0},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			sim, err := NormalizedSimilarity(tc.a, tc.b, JaroWinkler)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(sim, tc.expected) {
				t.Errorf("Expected ~%v, got %v", tc.expected, sim)
			}
		})
	}

	_, err := NormalizedSimilarity("martha", "marhta", JaroWinkler, WithPrefixWeight(0.5))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for prefix weight 0.5, got %v", err)
	}
}

// every metric must be symmetric in its arguments
func TestSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"martha", "marhta"},
		{"", "abc"},
		{"flaw", "lawn"},
	}
	metrics := []Metric{Levenshtein, DamerauLevenshtein, Indel, LCSseq, Jaro, JaroWinkler}

	for _, m := range metrics {
		for _, p := range pairs {
			ab, err := Distance(p[0], p[1], m)
			if err != nil {
				t.Fatalf("%s(%q,%q): %v", m, p[0], p[1], err)
			}
			ba, err := Distance(p[1], p[0], m)
			if err != nil {
				t.Fatalf("%s(%q,%q): %v", m, p[1], p[0], err)
			}
			if !approx(ab, ba) {
				t.Errorf("%s not symmetric on %q/%q: %v vs %v", m, p[0], p[1], ab, ba)
			}
		}
	}
}

func TestTriangleInequality(t *testing.T) {
	words := []string{"kitten", "sitting", "mitten", "fitting", ""}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				ab, _ := Distance(a, b, Levenshtein)
				bc, _ := Distance(b, c, Levenshtein)
				ac, _ := Distance(a, c, Levenshtein)
				if ac > ab+bc {
					t.Errorf("triangle violated: d(%q,%q)=%v > d(%q,%q)+d(%q,%q)=%v",
						a, c, ac, a, b, b, c, ab+bc)
				}
			}
		}
	}
}

func TestNormalizedComplement(t *testing.T) {
	for _, m := range []Metric{Levenshtein, DamerauLevenshtein, Indel, LCSseq, Jaro} {
		sim, err := NormalizedSimilarity("kitten", "sitting", m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dist, err := NormalizedDistance("kitten", "sitting", m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !approx(sim+dist, 1) {
			t.Errorf("%s: similarity %v + distance %v != 1", m, sim, dist)
		}
	}
}

func TestScoreCutoff(t *testing.T) {
	// kitten/sitting similarity is ~57.14
	sim, err := Similarity("kitten", "sitting", Levenshtein, WithScoreCutoff(50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(sim, 57.142857) {
		t.Errorf("Cutoff below score must be transparent, got %v", sim)
	}

	sim, err = Similarity("kitten", "sitting", Levenshtein, WithScoreCutoff(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("Score below cutoff must collapse to 0, got %v", sim)
	}

	norm, err := NormalizedSimilarity("kitten", "sitting", Levenshtein, WithScoreCutoff(0.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if norm != 0 {
		t.Errorf("Normalized score below cutoff must collapse to 0, got %v", norm)
	}

	dist, err := NormalizedDistance("kitten", "sitting", Levenshtein, WithScoreCutoff(0.1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist != 1 {
		t.Errorf("Normalized distance above cutoff must collapse to 1, got %v", dist)
	}
}

func TestEmptyInputs(t *testing.T) {
	for _, m := range []Metric{Levenshtein, DamerauLevenshtein, Indel, LCSseq, Jaro, JaroWinkler} {
		sim, err := Similarity("", "", m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if sim != 100 {
			t.Errorf("%s: two empty strings must score 100, got %v", m, sim)
		}

		sim, err = Similarity("", "abc", m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if sim != 0 {
			t.Errorf("%s: empty vs non-empty must score 0, got %v", m, sim)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	testCases := []struct {
		description string
		run         func() error
	}{
		{"Negative weight", func() error {
			_, err := Distance("a", "b", Levenshtein, WithWeights(-1, 1, 1))
			return err
		}},
		{"Negative max distance", func() error {
			_, err := Distance("a", "b", Levenshtein, WithMaxDistance(-2))
			return err
		}},
		{"Weights on jaro", func() error {
			_, err := Distance("a", "b", Jaro, WithWeights(1, 1, 2))
			return err
		}},
		{"Cutoff above 100", func() error {
			_, err := Similarity("a", "b", Levenshtein, WithScoreCutoff(150))
			return err
		}},
		{"Normalized cutoff above 1", func() error {
			_, err := NormalizedSimilarity("a", "b", Levenshtein, WithScoreCutoff(1.5))
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestInvalidEncoding(t *testing.T) {
	_, err := Distance("abc", "\xff\xfe", Levenshtein)
	if !errors.Is(err, sequence.ErrEncoding) {
		t.Errorf("Expected ErrEncoding, got %v", err)
	}
}

func TestProcessorOption(t *testing.T) {
	sim, err := Similarity("KITTEN", "sitting", Levenshtein, WithProcessor(sequence.Default))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(sim, 57.142857) {
		t.Errorf("Expected ~57.1429 after case folding, got %v", sim)
	}
}

func TestParseMetric(t *testing.T) {
	for m, name := range metricNames {
		parsed, err := ParseMetric(name)
		if err != nil {
			t.Fatalf("ParseMetric(%q): %v", name, err)
		}
		if parsed != m {
			t.Errorf("ParseMetric(%q) = %v, want %v", name, parsed, m)
		}
	}

	if _, err := ParseMetric("sorensen"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for unknown name, got %v", err)
	}
}

func BenchmarkLevenshtein(b *testing.B) {
	s1 := strings.Repeat("abcdefgh", 8)
	s2 := strings.Repeat("abcdefgi", 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Distance(s1, s2, Levenshtein); err != nil {
			b.Fatal(err)
		}
	}
}
