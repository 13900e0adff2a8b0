package charclass

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	for _, test := range []struct {
		name string
		got  string
		want string
	}{
		{"word delimiters", c.WordDelimiters.String(), " \t\n;&()<>"},
		{"no-expand chars", c.NoExpandChars.String(), " \t\n\r="},
		{"search delimiters", c.SearchDelimiters.String(), ""},
	} {
		if test.got != test.want {
			t.Errorf("default %s = %q, want %q", test.name, test.got, test.want)
		}
	}
	if c.ExpansionChar != '!' || c.SubstChar != '^' || c.CommentChar != Disabled {
		t.Errorf("default chars = %q %q %q, want '!' '^' NUL",
			c.ExpansionChar, c.SubstChar, c.CommentChar)
	}
	if c.QuotesInhibitExpansion || c.WriteTimestamps {
		t.Errorf("default flags should be false")
	}
	if c.InhibitExpansion != nil {
		t.Errorf("default inhibit hook should be nil")
	}
}

func TestWordDelimiters(t *testing.T) {
	c := Default()

	c.AddWordDelimiter(':')
	c.AddWordDelimiter(':')
	if got := c.WordDelimiters.String(); got != " \t\n;&()<>:" {
		t.Errorf("after adding ':' twice, got %q", got)
	}

	c.RemoveWordDelimiter(':')
	c.RemoveWordDelimiter('|')
	if got := c.WordDelimiters.String(); got != DefaultWordDelimiters {
		t.Errorf("after removing ':' and absent '|', got %q", got)
	}

	c.SetWordDelimiters(" \t\n")
	if got := c.WordDelimiters.String(); got != " \t\n" {
		t.Errorf("after bulk set, got %q", got)
	}
	if c.WordDelimiters.Contains(';') {
		t.Errorf("bulk set should drop ';'")
	}
}

func TestNoExpandAndSearchDelimiters(t *testing.T) {
	c := Default()

	c.AddNoExpandChar('(')
	c.RemoveNoExpandChar('=')
	if got := c.NoExpandChars.String(); got != " \t\n\r(" {
		t.Errorf("no-expand chars = %q", got)
	}
	c.SetNoExpandChars("")
	if c.NoExpandChars.Len() != 0 {
		t.Errorf("no-expand chars should be empty")
	}

	c.AddSearchDelimiter(';')
	c.AddSearchDelimiter('&')
	c.RemoveSearchDelimiter(';')
	if got := c.SearchDelimiters.String(); got != "&" {
		t.Errorf("search delimiters = %q", got)
	}
	c.SetSearchDelimiters("xyzx")
	if got := c.SearchDelimiters.Runes(); !cmp.Equal(got, []rune("xyz")) {
		t.Errorf("search delimiters = %q, want %q", string(got), "xyz")
	}
}

func TestDisabledChars(t *testing.T) {
	c := Default()
	if !c.ExpansionEnabled() || !c.SubstEnabled() || c.CommentEnabled() {
		t.Errorf("unexpected enabled state for defaults")
	}
	c.ExpansionChar = Disabled
	c.SubstChar = Disabled
	c.CommentChar = '#'
	if c.ExpansionEnabled() || c.SubstEnabled() || !c.CommentEnabled() {
		t.Errorf("unexpected enabled state after changes")
	}
}

func TestClone(t *testing.T) {
	c := Default()
	c.InhibitExpansion = InhibitFunc(func(string, int) bool { return true })
	clone := c.Clone()

	clone.AddWordDelimiter('|')
	clone.ExpansionChar = '%'
	if c.WordDelimiters.Contains('|') || c.ExpansionChar != '!' {
		t.Errorf("mutating the clone changed the original")
	}
	if clone.InhibitExpansion == nil || !clone.InhibitExpansion.Inhibit("", 0) {
		t.Errorf("clone should share the inhibit hook")
	}
}

func TestRuneSet_ZeroValue(t *testing.T) {
	var s RuneSet
	if s.Contains('a') || s.Len() != 0 || s.String() != "" {
		t.Errorf("zero RuneSet is not empty")
	}
	s.Remove('a')
	s.Add('b')
	s.Add('a')
	s.Add('c')
	s.Remove('a')
	if got := s.String(); got != "bc" {
		t.Errorf("got %q, want %q", got, "bc")
	}
	runes := s.Runes()
	runes[0] = 'z'
	if s.String() != "bc" {
		t.Errorf("Runes returned a slice aliasing the set")
	}
}
