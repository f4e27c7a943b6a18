package utils

import "testing"

func TestIsOnlyNumbers(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"12345", true},
		{"0", true},
		{"", false},
		{"12a45", false},
		{"abc", false},
	}

	for _, tc := range testCases {
		if got := IsOnlyNumbers(tc.input); got != tc.expected {
			t.Errorf("IsOnlyNumbers(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestIsRepetitive(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"aaaa", true},
		{"zzzzzzzzz", true},
		{"aa", false},
		{"aaab", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsRepetitive(tc.input); got != tc.expected {
			t.Errorf("IsRepetitive(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}
