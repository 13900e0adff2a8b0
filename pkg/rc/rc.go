// Package rc reads the YAML configuration file of histline.
//
// All keys are optional; a missing key keeps the default. An empty string for
// one of the character keys disables the corresponding feature.
package rc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/fsutil"
	"github.com/luisbebop/histline/pkg/logutil"
	"gopkg.in/yaml.v3"
)

var logger = logutil.GetLogger("[rc] ")

// ErrBadChar is wrapped by errors about character keys that are neither empty
// nor a single character.
var ErrBadChar = errors.New("must be empty or a single character")

// RC is the content of an rc file. Pointer fields are nil when the key is
// absent.
type RC struct {
	WordDelimiters         *string `yaml:"word-delimiters"`
	NoExpandChars          *string `yaml:"no-expand-chars"`
	SearchDelimiters       *string `yaml:"search-delimiters"`
	CommentChar            *string `yaml:"comment-char"`
	ExpansionChar          *string `yaml:"expansion-char"`
	SubstChar              *string `yaml:"subst-char"`
	QuotesInhibitExpansion *bool   `yaml:"quotes-inhibit-expansion"`
	WriteTimestamps        *bool   `yaml:"write-timestamps"`
	// Stifle limit of the session history; negative means unlimited.
	HistorySize *int `yaml:"history-size"`
	// Path of the history file, with ~ expanded.
	HistoryFile *string `yaml:"history-file"`
}

// Load reads and parses the rc file at path. A missing file is not an error
// and yields an empty RC.
func Load(path string) (*RC, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Println("no rc file at", path)
		return &RC{}, nil
	} else if err != nil {
		return nil, err
	}
	rc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// Parse parses the content of an rc file. Unknown keys are errors.
func Parse(data []byte) (*RC, error) {
	var rc RC
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rc); err != nil && err != io.EOF {
		return nil, err
	}
	for _, c := range []struct {
		key string
		val *string
	}{
		{"comment-char", rc.CommentChar},
		{"expansion-char", rc.ExpansionChar},
		{"subst-char", rc.SubstChar},
	} {
		if c.val != nil && utf8.RuneCountInString(*c.val) > 1 {
			return nil, fmt.Errorf("%s %q: %w", c.key, *c.val, ErrBadChar)
		}
	}
	if rc.HistoryFile != nil {
		path, err := fsutil.ExpandTilde(*rc.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("history-file: %w", err)
		}
		rc.HistoryFile = &path
	}
	return &rc, nil
}

// Apply writes the values present in rc into cfg.
func (rc *RC) Apply(cfg *charclass.Config) {
	if rc.WordDelimiters != nil {
		cfg.SetWordDelimiters(*rc.WordDelimiters)
	}
	if rc.NoExpandChars != nil {
		cfg.SetNoExpandChars(*rc.NoExpandChars)
	}
	if rc.SearchDelimiters != nil {
		cfg.SetSearchDelimiters(*rc.SearchDelimiters)
	}
	setChar(&cfg.CommentChar, rc.CommentChar)
	setChar(&cfg.ExpansionChar, rc.ExpansionChar)
	setChar(&cfg.SubstChar, rc.SubstChar)
	if rc.QuotesInhibitExpansion != nil {
		cfg.QuotesInhibitExpansion = *rc.QuotesInhibitExpansion
	}
	if rc.WriteTimestamps != nil {
		cfg.WriteTimestamps = *rc.WriteTimestamps
	}
}

func setChar(dst *rune, s *string) {
	if s == nil {
		return
	}
	if *s == "" {
		*dst = charclass.Disabled
		return
	}
	r, _ := utf8.DecodeRuneInString(*s)
	*dst = r
}
