// Package histfile reads and writes history files.
//
// A history file holds one entry per line, oldest first. When timestamps are
// written, each entry is preceded by a line made of the comment character and
// the decimal Unix time of the entry, like "#1700000000". On reading, such a
// line attaches its timestamp to the entry that follows it. Timestamp lines are
// only recognized when timestamps are written or a comment character is set;
// otherwise every line is an entry. Lines have no length limit.
//
// Writes hold an advisory lock on a sidecar file (path + ".lock") so that
// concurrent sessions do not interleave their output. Save and Truncate write
// a temporary file and rename it over the history file.
package histfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/errutil"
	"github.com/luisbebop/histline/pkg/logutil"
)

var logger = logutil.GetLogger("[histfile] ")

// DefaultCommentChar prefixes timestamp lines when no comment character is
// configured.
const DefaultCommentChar = '#'

// Record is an entry of a history file.
type Record struct {
	Line string
	// The zero value means the entry has no timestamp.
	Time time.Time
}

// Options controls how history files are read and written.
type Options struct {
	// Whether to write a timestamp line before each entry with a timestamp.
	WriteTimestamps bool
	// Prefix of timestamp lines. When charclass.Disabled, DefaultCommentChar
	// is used.
	CommentChar rune
}

// Whether lines may be timestamp lines.
func (o Options) timestamps() bool {
	return o.WriteTimestamps || o.CommentChar != charclass.Disabled
}

func (o Options) commentChar() rune {
	if o.CommentChar == charclass.Disabled {
		return DefaultCommentChar
	}
	return o.CommentChar
}

// Error records a failed history file operation.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Load reads all the entries of the history file at path. A missing file is
// an error that matches fs.ErrNotExist.
func Load(path string, opts Options) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{"read", path, unwrapPathError(err)}
	}
	return parse(data, opts), nil
}

// ReadRange reads the entries with indices in [from, to) of the history file
// at path. A negative to means the end of the file. The range is clamped to
// the entries that exist.
func ReadRange(path string, from, to int, opts Options) ([]Record, error) {
	records, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	if to < 0 || to > len(records) {
		to = len(records)
	}
	from = max(from, 0)
	if from >= to {
		return nil, nil
	}
	return records[from:to], nil
}

// Save replaces the content of the history file at path with records.
func Save(path string, records []Record, opts Options) error {
	return withLock(path, "write", func() error {
		return replace(path, format(records, opts))
	})
}

// Append appends records to the history file at path, creating it if
// needed.
func Append(path string, records []Record, opts Options) error {
	return withLock(path, "append", func() error {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return err
		}
		_, err = f.Write(format(records, opts))
		return errutil.Multi(err, f.Close())
	})
}

// Truncate keeps only the newest keep entries of the history file at path.
// Timestamp lines are kept together with their entries.
func Truncate(path string, keep int, opts Options) error {
	return withLock(path, "truncate", func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		records := parse(data, opts)
		if len(records) <= keep {
			return nil
		}
		logger.Printf("truncating %s from %d to %d entries", path, len(records), keep)
		return replace(path, format(records[len(records)-max(keep, 0):], opts))
	})
}

func withLock(path, op string, f func() error) error {
	unlock, err := lock(path)
	if err != nil {
		return &Error{"lock", path, unwrapPathError(err)}
	}
	err = f()
	err = errutil.Multi(err, unlock())
	if err != nil {
		return &Error{op, path, unwrapPathError(err)}
	}
	return nil
}

func replace(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	err = errutil.Multi(err, tmp.Chmod(0600), tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
	}
	return err
}

func parse(data []byte, opts Options) []Record {
	if len(data) == 0 {
		return nil
	}
	timestamps, comment := opts.timestamps(), opts.commentChar()
	var records []Record
	var pending time.Time
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if timestamps {
			if t, ok := parseTimestamp(line, comment); ok {
				pending = t
				continue
			}
		}
		records = append(records, Record{Line: line, Time: pending})
		pending = time.Time{}
	}
	return records
}

func parseTimestamp(line string, comment rune) (time.Time, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if r != comment || size == len(line) {
		return time.Time{}, false
	}
	digits := line[size:]
	if strings.TrimLeft(digits, "0123456789") != "" {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

func format(records []Record, opts Options) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		if opts.WriteTimestamps && !r.Time.IsZero() {
			buf.WriteRune(opts.commentChar())
			buf.WriteString(strconv.FormatInt(r.Time.Unix(), 10))
			buf.WriteByte('\n')
		}
		buf.WriteString(r.Line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// The Error already names the path.
func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
