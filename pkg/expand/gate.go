package expand

import (
	"unicode/utf8"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/tokenize"
)

// Gate decides whether the expansion character at a given position of a line
// introduces a history expansion.
type Gate struct {
	Config *charclass.Config
}

// ShouldExpand reports whether the rune at the byte offset index of line is an
// expansion character that should be expanded. The checks are, in order:
//
//   - expansion must be enabled;
//   - index must be in range and hold the expansion character;
//   - the next rune, if any, must not be a no-expand character;
//   - no word starting with the comment character may begin at or before
//     index;
//   - with QuotesInhibitExpansion, index must not lie within single quotes;
//   - the inhibit hook, if set, must not veto it.
//
// The first failing check decides the result; later checks, including the
// hook, are not run. The expansion character at the very end of a line is
// never expanded.
func (g Gate) ShouldExpand(line string, index int) bool {
	cfg := g.Config
	if !cfg.ExpansionEnabled() {
		return false
	}
	if index < 0 || index >= len(line) {
		return false
	}
	r, size := utf8.DecodeRuneInString(line[index:])
	if r != cfg.ExpansionChar {
		return false
	}
	next := index + size
	if next >= len(line) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(line[next:]); cfg.NoExpandChars.Contains(r) {
		return false
	}
	if cfg.CommentEnabled() && inComment(line, index, cfg) {
		return false
	}
	if cfg.QuotesInhibitExpansion && inSingleQuotes(line, index) {
		return false
	}
	if cfg.InhibitExpansion != nil && cfg.InhibitExpansion.Inhibit(line, index) {
		return false
	}
	return true
}

// A comment runs from a word starting with the comment character to the end
// of the line.
func inComment(line string, index int, cfg *charclass.Config) bool {
	for span := range tokenize.Spans(line, cfg.WordDelimiters) {
		if span.From > index {
			break
		}
		if r, _ := utf8.DecodeRuneInString(line[span.From:]); r == cfg.CommentChar {
			return true
		}
	}
	return false
}

// Quote state is tracked from the start of the line. Single quotes within
// double quotes are literal, and a backslash outside single quotes escapes the
// next byte.
func inSingleQuotes(line string, index int) bool {
	single, double := false, false
	for i := 0; i < index; i++ {
		switch line[i] {
		case '\\':
			if !single {
				i++
			}
		case '\'':
			if !double {
				single = !single
			}
		case '"':
			if !single {
				double = !double
			}
		}
	}
	return single
}
