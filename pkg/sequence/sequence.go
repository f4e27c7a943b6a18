/*
Package sequence holds the canonical input representation used by every
metric: an indexable slice of code points, plus the processors applied
before comparison.

Lengths are always unit counts, never byte counts, so multi-byte
characters count as one unit.
*/
package sequence

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEncoding is returned when input text is not valid UTF-8.
var ErrEncoding = errors.New("invalid utf-8 encoding")

// Seq is an immutable view of an input string as 0-indexed code points.
type Seq []rune

// Processor transforms text before comparison (e.g. case folding).
type Processor func(string) string

// Options control the built-in normalization applied after a custom
// processor has run.
type Options struct {
	// CaseFold lowercases all units before comparison.
	CaseFold bool
	// FilterNonAlnum drops punctuation and whitespace.
	FilterNonAlnum bool
}

// Identity returns the input unchanged.
func Identity(s string) string { return s }

// Default lowercases, trims and collapses internal whitespace runs to a
// single space.
func Default(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Alnum lowercases and keeps only letters and digits.
func Alnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// New converts text into a Seq, rejecting malformed encodings.
func New(text string) (Seq, error) {
	if !utf8.ValidString(text) {
		return nil, ErrEncoding
	}
	return Seq(text), nil
}

// NewWith applies the custom processor (if any) followed by the built-in
// options, then converts the result. The source string is never mutated.
func NewWith(text string, proc Processor, opts Options) (Seq, error) {
	if !utf8.ValidString(text) {
		return nil, ErrEncoding
	}
	if proc != nil {
		text = proc(text)
	}
	if opts.CaseFold {
		text = strings.ToLower(text)
	}
	if opts.FilterNonAlnum {
		var b strings.Builder
		b.Grow(len(text))
		for _, r := range text {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		text = b.String()
	}
	return Seq(text), nil
}

// Len returns the unit count.
func (s Seq) Len() int { return len(s) }

// String converts the sequence back to a string.
func (s Seq) String() string { return string(s) }

// Equal reports unit-wise equality.
func (s Seq) Equal(t Seq) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}
