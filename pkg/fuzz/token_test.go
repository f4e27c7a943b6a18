package fuzz

import (
	"testing"

	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

func TestTokenSortRatio(t *testing.T) {
	testCases := []struct {
		s1          string
		s2          string
		expected    float64
		description string
	}{
		{"new york mets vs atlanta braves", "atlanta braves vs new york mets", 100, "Reordered phrase"},
		{"fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear", 100, "Swapped words"},
		{"hello world", "hello world", 100, "Equal"},
		{"", "", 100, "Both empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			score, err := TokenSortRatio(tc.s1, tc.s2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(score, tc.expected) {
				t.Errorf("Expected ~%v, got %v", tc.expected, score)
			}
		})
	}
}

func TestTokenSetRatio(t *testing.T) {
	// one side a word subset of the other scores perfect
	score, err := TokenSetRatio("fuzzy was a bear", "fuzzy fuzzy was a bear")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 100 {
		t.Errorf("Expected 100 for subset, got %v", score)
	}

	score, err = TokenSetRatio("fuzzy was a bear", "fuzzy was a dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(score, 84.615384) {
		t.Errorf("Expected ~84.6154, got %v", score)
	}
}

func TestTokenRatio(t *testing.T) {
	pairs := [][2]string{
		{"fuzzy was a bear", "fuzzy was a dog"},
		{"new york mets", "new york mets vs atlanta braves"},
		{"this is a test", "this is a test!"},
	}

	// the combined score can never fall below either component
	for _, p := range pairs {
		combined, err := TokenRatio(p[0], p[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sortScore, err := TokenSortRatio(p[0], p[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		setScore, err := TokenSetRatio(p[0], p[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if combined < sortScore || combined < setScore {
			t.Errorf("TokenRatio(%q, %q)=%v below components (%v, %v)",
				p[0], p[1], combined, sortScore, setScore)
		}
	}
}

func TestWRatio(t *testing.T) {
	testCases := []struct {
		s1          string
		s2          string
		expected    float64
		description string
	}{
		{"this is a test", "this is a test!", 96.551724, "Similar lengths use the base ratio"},
		{"bcd", "abcdefghi", 90, "Partial alignment scaled by 0.9"},
		{"ab", "abxxxxxxxxxxxxxx", 60, "Far-apart lengths scaled by 0.6"},
		{"", "abc", 0, "Empty query"},
		{"hello", "hello", 100, "Equal"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			score, err := WRatio(tc.s1, tc.s2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(score, tc.expected) {
				t.Errorf("WRatio(%q, %q): expected ~%v, got %v", tc.s1, tc.s2, tc.expected, score)
			}
		})
	}
}

func TestWRatioProcessor(t *testing.T) {
	score, err := WRatio("New York Mets", "NEW YORK METS", WithProcessor(sequence.Default))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 100 {
		t.Errorf("Expected 100 after case folding, got %v", score)
	}
}
