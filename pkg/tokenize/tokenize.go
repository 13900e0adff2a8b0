// Package tokenize splits input lines into words.
package tokenize

import (
	"iter"
	"slices"
	"strings"
)

// Delimiters is a set of runes that separate words. charclass.RuneSet
// satisfies it.
type Delimiters interface {
	Contains(r rune) bool
}

// Chars is a Delimiters made of the runes of a string.
type Chars string

// Contains reports whether r occurs in s.
func (s Chars) Contains(r rune) bool { return strings.ContainsRune(string(s), r) }

// Span is the byte range [From, To) of a word within a line.
type Span struct {
	From, To int
}

// Spans returns a sequence of the spans of the words in line. A word is a
// maximal run of runes not in delims; runs of delimiters never produce empty
// words. A nil delims means the whole line is one word.
//
// Each iteration over the returned sequence scans line afresh.
func Spans(line string, delims Delimiters) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		start := -1
		for i, r := range line {
			if delims != nil && delims.Contains(r) {
				if start >= 0 {
					if !yield(Span{start, i}) {
						return
					}
					start = -1
				}
			} else if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			yield(Span{start, len(line)})
		}
	}
}

// Tokenize returns a sequence of the words in line, from left to right. See
// Spans for what constitutes a word.
func Tokenize(line string, delims Delimiters) iter.Seq[string] {
	return func(yield func(string) bool) {
		for span := range Spans(line, delims) {
			if !yield(line[span.From:span.To]) {
				return
			}
		}
	}
}

// Words is like Tokenize, but collects the words into a slice.
func Words(line string, delims Delimiters) []string {
	return slices.Collect(Tokenize(line, delims))
}

// SpanAt returns the span of the word containing the byte at index, and
// whether there is such a word.
func SpanAt(line string, delims Delimiters, index int) (Span, bool) {
	for span := range Spans(line, delims) {
		if span.From > index {
			break
		}
		if index < span.To {
			return span, true
		}
	}
	return Span{}, false
}
