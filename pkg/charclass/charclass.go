// Package charclass keeps the character classes that control how input lines
// are split into words and where history expansion is recognized.
//
// A Config is created once per editing session and passed explicitly to the
// tokenizer, the expansion gate and the history expander; there is no global
// state.
package charclass

// Disabled is the sentinel for a disabled character. Setting CommentChar,
// ExpansionChar or SubstChar to Disabled turns the corresponding feature off.
const Disabled rune = 0

// Default character classes.
const (
	DefaultWordDelimiters = " \t\n;&()<>"
	DefaultNoExpandChars  = " \t\n\r="
	DefaultExpansionChar  = '!'
	DefaultSubstChar      = '^'
)

// Inhibitor decides whether history expansion should be suppressed at a
// position where the expansion character was otherwise recognized. Index is a
// byte offset into line.
//
// Inhibit is called synchronously while a line is examined. It must not modify
// the Config it is attached to, or any history list the line is being checked
// against.
type Inhibitor interface {
	Inhibit(line string, index int) bool
}

// InhibitFunc adapts an ordinary function to an Inhibitor.
type InhibitFunc func(line string, index int) bool

// Inhibit calls f(line, index).
func (f InhibitFunc) Inhibit(line string, index int) bool { return f(line, index) }

// Config holds the character classes and flags for tokenizing and history
// expansion.
type Config struct {
	// Runes that separate words.
	WordDelimiters RuneSet
	// Runes that suppress expansion when they follow the expansion character.
	NoExpandChars RuneSet
	// Runes that, in addition to space, tab, ':' and '?', terminate the search
	// string of a !string event.
	SearchDelimiters RuneSet

	// Starts a comment; expansion is not done from a word starting with it to
	// the end of the line. It also prefixes timestamp lines in history files.
	CommentChar rune
	// Introduces a history expansion; '!' by default.
	ExpansionChar rune
	// Introduces a quick substitution at the start of a line; '^' by default.
	SubstChar rune

	// Whether single-quoted text is exempt from expansion.
	QuotesInhibitExpansion bool
	// Whether timestamps are written to history files.
	WriteTimestamps bool

	// If not nil, consulted last before expanding.
	InhibitExpansion Inhibitor
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		WordDelimiters: NewRuneSet(DefaultWordDelimiters),
		NoExpandChars:  NewRuneSet(DefaultNoExpandChars),
		CommentChar:    Disabled,
		ExpansionChar:  DefaultExpansionChar,
		SubstChar:      DefaultSubstChar,
	}
}

// Clone returns a deep copy of c. The inhibit hook is shared.
func (c *Config) Clone() *Config {
	clone := *c
	clone.WordDelimiters = c.WordDelimiters.Clone()
	clone.NoExpandChars = c.NoExpandChars.Clone()
	clone.SearchDelimiters = c.SearchDelimiters.Clone()
	return &clone
}

// ExpansionEnabled reports whether history expansion is enabled at all.
func (c *Config) ExpansionEnabled() bool { return c.ExpansionChar != Disabled }

// CommentEnabled reports whether a comment character is set.
func (c *Config) CommentEnabled() bool { return c.CommentChar != Disabled }

// SubstEnabled reports whether quick substitution is enabled.
func (c *Config) SubstEnabled() bool { return c.SubstChar != Disabled }

// AddWordDelimiter adds r to the word delimiters. Adding a rune that is
// already present does nothing.
func (c *Config) AddWordDelimiter(r rune) { c.WordDelimiters.Add(r) }

// RemoveWordDelimiter removes r from the word delimiters, if present.
func (c *Config) RemoveWordDelimiter(r rune) { c.WordDelimiters.Remove(r) }

// SetWordDelimiters replaces the word delimiters with the runes of s.
func (c *Config) SetWordDelimiters(s string) { c.WordDelimiters.Set([]rune(s)) }

// AddNoExpandChar adds r to the runes that stop an expansion character from
// starting an expansion when they follow it.
func (c *Config) AddNoExpandChar(r rune) { c.NoExpandChars.Add(r) }

// RemoveNoExpandChar removes r from the no-expand runes, if present.
func (c *Config) RemoveNoExpandChar(r rune) { c.NoExpandChars.Remove(r) }

// SetNoExpandChars replaces the no-expand runes with the runes of s.
func (c *Config) SetNoExpandChars(s string) { c.NoExpandChars.Set([]rune(s)) }

// AddSearchDelimiter adds r to the search delimiters.
func (c *Config) AddSearchDelimiter(r rune) { c.SearchDelimiters.Add(r) }

// RemoveSearchDelimiter removes r from the search delimiters, if present.
func (c *Config) RemoveSearchDelimiter(r rune) { c.SearchDelimiters.Remove(r) }

// SetSearchDelimiters replaces the search delimiters with the runes of s.
func (c *Config) SetSearchDelimiters(s string) { c.SearchDelimiters.Set([]rune(s)) }
