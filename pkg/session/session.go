// Package session ties a character-class configuration, a history list and a
// history expander together, the way a line-oriented front end uses them.
//
// A submitted line goes through history expansion, and unless expansion asked
// for the result to be only printed, it is appended to the history list. The
// list enforces the stifle limit by evicting its oldest entries.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
	"github.com/luisbebop/histline/pkg/errutil"
	"github.com/luisbebop/histline/pkg/expand"
	"github.com/luisbebop/histline/pkg/hist"
	"github.com/luisbebop/histline/pkg/histfile"
	"github.com/luisbebop/histline/pkg/logutil"
	"github.com/luisbebop/histline/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[session] ")

// Outcome describes what Submit did with a line.
type Outcome struct {
	// The line after history expansion.
	Line   string
	Result expand.Result
	// Whether Line was added to the history list.
	Added bool
}

// Session is a single editing session. It is not safe for concurrent use.
type Session struct {
	Config   *charclass.Config
	List     *hist.List[any]
	Expander *expand.Expander

	// If not nil, submitted lines are also recorded in the store.
	Store storedefs.Store
	// If not nil, submitted lines are also added to the shared history.
	Shared daemondefs.Client
	// Used for timestamps; time.Now if nil.
	Now func() time.Time
}

// Data of entries known to be in the history file. Entries with any other
// data are written by AppendFile.
type inFile struct{}

// New creates a Session with an empty history list.
func New(cfg *charclass.Config) *Session {
	list := hist.NewList[any]()
	return &Session{
		Config:   cfg,
		List:     list,
		Expander: &expand.Expander{Config: cfg, History: list},
	}
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Submit processes an input line. Empty lines are ignored. Errors from history
// expansion are returned with a zero Outcome; the line is not added in that
// case. Errors from the store and the shared history are combined and
// returned after the line has been added locally.
func (s *Session) Submit(line string) (Outcome, error) {
	if line == "" {
		return Outcome{Result: expand.NoExpansion}, nil
	}
	expanded, result, err := s.Expander.Expand(line)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Line: expanded, Result: result}
	if result == expand.PrintOnly {
		return out, nil
	}
	s.List.Add(expanded, nil)
	s.List.ResetPos()
	var t time.Time
	if s.Config.WriteTimestamps {
		t = s.now()
		s.List.AddTime(t)
	}
	out.Added = s.List.Len() > 0

	var errs []error
	if s.Store != nil {
		if _, err := s.Store.AddCmd(expanded, t); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.Shared != nil {
		if _, err := s.Shared.AddCmd(expanded, t); err != nil {
			errs = append(errs, fmt.Errorf("shared history: %w", err))
		}
	}
	return out, errutil.Multi(errs...)
}

// Recall moves the recall cursor by delta entries, negative towards older
// entries, and returns the line at the new position. A delta of 0 returns the
// line under the cursor. Moving beyond the oldest or the newest entry fails
// with hist.ErrEndOfHistory, leaving the cursor on the last entry reached.
func (s *Session) Recall(delta int) (string, error) {
	move := s.List.Next
	if delta < 0 {
		move, delta = s.List.Previous, -delta
	}
	if delta == 0 {
		e, err := s.List.Current()
		return e.Line, err
	}
	var e hist.Entry[any]
	for range delta {
		var err error
		if e, err = move(); err != nil {
			return "", err
		}
	}
	return e.Line, nil
}

func (s *Session) fileOptions() histfile.Options {
	return histfile.Options{
		WriteTimestamps: s.Config.WriteTimestamps,
		CommentChar:     s.Config.CommentChar,
	}
}

// LoadFile appends the entries of a history file to the list. A missing file is
// not an error.
func (s *Session) LoadFile(path string) error {
	records, err := histfile.Load(path, s.fileOptions())
	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("no history file at", path)
		return nil
	} else if err != nil {
		return err
	}
	for _, r := range records {
		s.List.Add(r.Line, inFile{})
		s.List.AddTime(r.Time)
	}
	return nil
}

// SaveFile writes the whole list to a history file, replacing its content.
func (s *Session) SaveFile(path string) error {
	offsets, records := s.records(true)
	err := histfile.Save(path, records, s.fileOptions())
	if err == nil {
		s.markInFile(offsets)
	}
	return err
}

// AppendFile appends the entries that did not come from the file and have not
// been saved or appended to it yet. Removing or clearing entries does not
// affect which of the remaining ones are appended.
func (s *Session) AppendFile(path string) error {
	offsets, records := s.records(false)
	if len(records) == 0 {
		return nil
	}
	err := histfile.Append(path, records, s.fileOptions())
	if err == nil {
		s.markInFile(offsets)
	}
	return err
}

// Preload appends the most recent commands of the store, at most limit of
// them when limit is not negative.
func (s *Session) Preload(st storedefs.Store, limit int) error {
	next, err := st.NextCmdSeq()
	if err != nil {
		return err
	}
	from := 0
	if limit >= 0 {
		from = max(next-limit, 0)
	}
	cmds, err := st.CmdsWithSeq(from, next)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		s.List.Add(cmd.Text, nil)
		s.List.AddTime(cmd.Time)
	}
	return nil
}

// PreloadShared appends the entries of the shared history.
func (s *Session) PreloadShared(cl daemondefs.Client) error {
	entries, err := cl.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		s.List.Add(e.Line, nil)
		s.List.AddTime(e.Time)
	}
	return nil
}

// Returns the entries to write with their offsets: all of them, or only those
// not yet in the file.
func (s *Session) records(all bool) ([]int, []histfile.Record) {
	var (
		offsets []int
		records []histfile.Record
	)
	for offset, e := range s.List.All() {
		if _, ok := e.Data.(inFile); ok && !all {
			continue
		}
		offsets = append(offsets, offset)
		records = append(records, histfile.Record{Line: e.Line, Time: e.Time})
	}
	return offsets, records
}

func (s *Session) markInFile(offsets []int) {
	for _, offset := range offsets {
		if e, err := s.List.Get(offset); err == nil {
			s.List.Replace(offset, e.Line, inFile{})
		}
	}
}
