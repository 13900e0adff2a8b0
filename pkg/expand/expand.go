// Package expand implements history expansion in the style of csh and
// bash.
//
// An expansion starts with the expansion character ('!' by default) at a
// position accepted by Gate, and consists of an event designator, an optional
// word designator and optional modifiers:
//
//	!!            the previous line
//	!n            the line at logical offset n
//	!-n           the line n entries back
//	!str          the newest line starting with str
//	!?str[?]      the newest line containing str
//	:n :^ :$ :*   word n, the first argument, the last word, all arguments
//	:x-y :x* :x-  a range of words
//	:h :t :r :e   head, tail, root or extension of a path
//	:s/old/new/   replace the first occurrence of old with new
//	:p            print the result instead of executing it
//
// A line starting with the substitution character is a quick substitution:
// ^old^new^ is the same as !!:s^old^new^.
package expand

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/tokenize"
)

// Errors returned by Expand, wrapped with the text that caused them.
var (
	// ErrEventNotFound means an event designator matched no entry.
	ErrEventNotFound = errors.New("event not found")
	// ErrBadWordSpecifier means a word designator selected words the event
	// does not have, or could not be parsed.
	ErrBadWordSpecifier = errors.New("bad word specifier")
	// ErrSubstFailed means a substitution is malformed or its old text was
	// not found.
	ErrSubstFailed = errors.New("substitution failed")
	// ErrBadModifier means a modifier after ':' is not one of h, t, r, e, s
	// or p.
	ErrBadModifier = errors.New("unrecognized history modifier")
)

// Result describes the outcome of a successful Expand.
type Result int

const (
	// NoExpansion means that no expansion took place. The line may still
	// differ from the input if escaped expansion characters were unescaped.
	NoExpansion Result = iota
	// Expanded means that at least one expansion took place.
	Expanded
	// PrintOnly means that expansions took place and one of them carried the
	// :p modifier; the line should be shown but not executed.
	PrintOnly
)

var resultNames = [...]string{"NoExpansion", "Expanded", "PrintOnly"}

func (r Result) String() string {
	if 0 <= r && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "Result(" + strconv.Itoa(int(r)) + ")"
}

// Events is the history that events are looked up in. *hist.List satisfies
// it.
type Events interface {
	Len() int
	Base() int
	Line(offset int) (string, error)
}

// Expander expands history references in lines.
type Expander struct {
	Config  *charclass.Config
	History Events
}

// Expand performs history expansion on line. On error, the line is returned
// unchanged along with NoExpansion, and the error wraps one of the Err*
// values with the offending text.
func (ex *Expander) Expand(line string) (string, Result, error) {
	cfg := ex.Config
	if !cfg.ExpansionEnabled() {
		return line, NoExpansion, nil
	}
	var sb strings.Builder
	result := NoExpansion
	i := 0
	if cfg.SubstEnabled() {
		if r, size := utf8.DecodeRuneInString(line); r == cfg.SubstChar {
			event, err := ex.relative(1)
			if err != nil {
				return line, NoExpansion, fmt.Errorf("%s: %w", line[:size], err)
			}
			text, n, err := substitute(event, line[size:], cfg.SubstChar)
			if err != nil {
				return line, NoExpansion, fmt.Errorf("%s: %w", line[:size+n], err)
			}
			sb.WriteString(text)
			result = Expanded
			i = size + n
		}
	}

	gate := Gate{cfg}
	expChar := string(cfg.ExpansionChar)
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == '\\' && strings.HasPrefix(line[i+1:], expChar) &&
			!(cfg.QuotesInhibitExpansion && inSingleQuotes(line, i)) {
			sb.WriteString(expChar)
			i += 1 + len(expChar)
			continue
		}
		if r != cfg.ExpansionChar || !gate.ShouldExpand(line, i) {
			sb.WriteString(line[i : i+size])
			i += size
			continue
		}
		text, n, printOnly, err := ex.expandAt(line[i+size:])
		if err != nil {
			return line, NoExpansion, fmt.Errorf("%s: %w", line[i:i+size+n], err)
		}
		sb.WriteString(text)
		if printOnly {
			result = PrintOnly
		} else if result == NoExpansion {
			result = Expanded
		}
		i += size + n
	}
	return sb.String(), result, nil
}

// Expands the designators in s, which follows an expansion character. It
// returns the expansion and the number of bytes consumed; on error, the
// number of bytes examined.
func (ex *Expander) expandAt(s string) (string, int, bool, error) {
	event, n, err := ex.event(s)
	if err != nil {
		return "", n, false, err
	}
	text := event
	if spec, colon, ok := wordSpec(s[n:]); ok {
		words := tokenize.Words(event, ex.Config.WordDelimiters)
		var m int
		text, m, err = selectWords(words, spec)
		n += colon + m
		if err != nil {
			return "", n, false, err
		}
	}
	printOnly := false
	for strings.HasPrefix(s[n:], ":") && n+1 < len(s) && isLetter(s[n+1]) {
		mod := s[n+1]
		n += 2
		switch mod {
		case 'p':
			printOnly = true
		case 'h':
			if i := strings.LastIndexByte(text, '/'); i >= 0 {
				text = text[:i]
			}
		case 't':
			if i := strings.LastIndexByte(text, '/'); i >= 0 {
				text = text[i+1:]
			}
		case 'r':
			if i := strings.LastIndexByte(text, '.'); i >= 0 {
				text = text[:i]
			}
		case 'e':
			if i := strings.LastIndexByte(text, '.'); i >= 0 {
				text = text[i:]
			}
		case 's':
			delim, size := utf8.DecodeRuneInString(s[n:])
			if size == 0 {
				return "", n, false, ErrSubstFailed
			}
			var m int
			text, m, err = substitute(text, s[n+size:], delim)
			n += size + m
			if err != nil {
				return "", n, false, err
			}
		default:
			return "", n, false, ErrBadModifier
		}
	}
	return text, n, printOnly, nil
}

// Parses an event designator at the start of s.
func (ex *Expander) event(s string) (string, int, error) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case r == ex.Config.ExpansionChar:
		line, err := ex.relative(1)
		return line, size, err
	case r == '-' && len(s) > 1 && isDigit(s[1]):
		n := 1 + digits(s[1:])
		k, err := strconv.Atoi(s[1:n])
		if err != nil {
			return "", n, ErrEventNotFound
		}
		line, err := ex.relative(k)
		return line, n, err
	case s != "" && isDigit(s[0]):
		n := digits(s)
		k, err := strconv.Atoi(s[:n])
		if err != nil {
			return "", n, ErrEventNotFound
		}
		line, err := ex.History.Line(k)
		if err != nil {
			return "", n, ErrEventNotFound
		}
		return line, n, nil
	case r == '?':
		str, n := s[1:], len(s)
		if i := strings.IndexAny(s[1:], "?\n"); i >= 0 {
			str, n = s[1:1+i], i+2
		}
		line, err := ex.find(str, strings.Contains)
		return line, n, err
	case r == ':' || r == '^' || r == '$' || r == '*':
		// A word designator without an event refers to the previous line.
		line, err := ex.relative(1)
		return line, 0, err
	default:
		n := ex.searchEnd(s)
		line, err := ex.find(s[:n], strings.HasPrefix)
		return line, n, err
	}
}

func (ex *Expander) searchEnd(s string) int {
	for i, r := range s {
		switch r {
		case ' ', '\t', '\n', ':', '?':
			return i
		}
		if ex.Config.SearchDelimiters.Contains(r) {
			return i
		}
	}
	return len(s)
}

// Returns the line k entries back from the end of the history.
func (ex *Expander) relative(k int) (string, error) {
	h := ex.History
	if k < 1 || k > h.Len() {
		return "", ErrEventNotFound
	}
	line, err := h.Line(h.Base() + h.Len() - k)
	if err != nil {
		return "", ErrEventNotFound
	}
	return line, nil
}

// Returns the newest line for which match(line, str) holds.
func (ex *Expander) find(str string, match func(line, str string) bool) (string, error) {
	h := ex.History
	if str == "" {
		return "", ErrEventNotFound
	}
	for offset := h.Base() + h.Len() - 1; offset >= h.Base(); offset-- {
		line, err := h.Line(offset)
		if err == nil && match(line, str) {
			return line, nil
		}
	}
	return "", ErrEventNotFound
}

// Locates a word designator at the start of s. It returns the designator
// itself and the length of the colon before it, which may be omitted before
// '^', '$' and '*'.
func wordSpec(s string) (string, int, bool) {
	if s == "" {
		return "", 0, false
	}
	switch c := s[0]; {
	case c == '^' || c == '$' || c == '*':
		return s, 0, true
	case c == ':' && len(s) > 1:
		c = s[1]
		if c == '^' || c == '$' || c == '*' || c == '-' || isDigit(c) {
			return s[1:], 1, true
		}
	}
	return "", 0, false
}

// Applies the word designator at the start of spec. It returns the selected
// words joined by spaces, and the length of the designator.
func selectWords(words []string, spec string) (string, int, error) {
	last := len(words) - 1
	var from, to, n int
	star := false
	switch spec[0] {
	case '^':
		from, to, n = 1, 1, 1
	case '$':
		from, to, n = last, last, 1
	case '*':
		from, to, n, star = 1, last, 1, true
	default:
		if spec[0] == '-' {
			from = 0
		} else {
			n = digits(spec)
			var err error
			from, err = strconv.Atoi(spec[:n])
			if err != nil {
				return "", n, ErrBadWordSpecifier
			}
		}
		to = from
		switch {
		case n < len(spec) && spec[n] == '*':
			to, star = last, true
			n++
		case n < len(spec) && spec[n] == '-':
			n++
			switch {
			case n < len(spec) && spec[n] == '$':
				to = last
				n++
			case n < len(spec) && isDigit(spec[n]):
				m := digits(spec[n:])
				var err error
				to, err = strconv.Atoi(spec[n : n+m])
				n += m
				if err != nil {
					return "", n, ErrBadWordSpecifier
				}
			default:
				to = last - 1
			}
		}
	}
	if star && from == last+1 {
		return "", n, nil
	}
	if from < 0 || to > last || from > to {
		return "", n, ErrBadWordSpecifier
	}
	return strings.Join(words[from:to+1], " "), n, nil
}

// Parses "old<delim>new[<delim>]" at the start of s and replaces the first
// occurrence of old in text with new. It returns the result and the length of
// what it parsed.
func substitute(text, s string, delim rune) (string, int, error) {
	old, rest, found := strings.Cut(s, string(delim))
	n := len(old)
	if !found {
		return "", n, ErrSubstFailed
	}
	n += utf8.RuneLen(delim)
	repl, _, found := strings.Cut(rest, string(delim))
	n += len(repl)
	if found {
		n += utf8.RuneLen(delim)
	}
	if old == "" || !strings.Contains(text, old) {
		return "", n, ErrSubstFailed
	}
	return strings.Replace(text, old, repl, 1), n, nil
}

func digits(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
