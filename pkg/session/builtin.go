package session

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// ErrHistoryUsage is wrapped by errors about bad arguments to the history
// builtin.
var ErrHistoryUsage = errors.New("bad usage")

const timeLayout = "2006-01-02 15:04:05"

// Builtin runs line as a builtin command if it is one, writing its output to w.
// It reports whether line was a builtin. The line is expected to have been
// through Submit already, so it is not expanded again. The only builtin is
// history:
//
//	history [-t] [N]    list all entries, or the newest N
//	history -c          clear the history
//	history -d OFFSET   delete the entry at OFFSET
//	history -s MAX      stifle the history to MAX entries
//	history -u          unstifle the history
//	history -r FILE     read FILE and append its entries
//	history -w FILE     write the history to FILE
//	history -a FILE     append new entries to FILE
//	history -p ARG...   print ARG..., which Submit has expanded
func (s *Session) Builtin(w io.Writer, line string) (bool, error) {
	args, err := shlex.Split(line)
	if err != nil || len(args) == 0 || args[0] != "history" {
		return false, nil
	}
	return true, s.History(w, args[1:])
}

// History runs the history builtin with the given arguments.
func (s *Session) History(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		clearAll, unstifle, showTime, printExp bool
		del, stifle                      int
		read, write, appendTo            string
	)
	fs.BoolVar(&clearAll, "c", false, "clear the history")
	fs.IntVar(&del, "d", 0, "delete the entry at `offset`")
	fs.IntVar(&stifle, "s", 0, "stifle the history to `max` entries")
	fs.BoolVar(&unstifle, "u", false, "unstifle the history")
	fs.StringVar(&read, "r", "", "read `file` and append its entries")
	fs.StringVar(&write, "w", "", "write the history to `file`")
	fs.StringVar(&appendTo, "a", "", "append new entries to `file`")
	fs.BoolVar(&showTime, "t", false, "show timestamps")
	fs.BoolVar(&printExp, "p", false, "print the arguments")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("history: %w: %v", ErrHistoryUsage, err)
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	rest := fs.Args()

	if printExp {
		fmt.Fprintln(w, strings.Join(rest, " "))
		return nil
	}
	listing := len(set) == 0 || len(set) == 1 && showTime
	if !listing && len(rest) > 0 {
		return fmt.Errorf("history: %w: unexpected argument %q", ErrHistoryUsage, rest[0])
	}

	if clearAll {
		s.List.Clear()
	}
	if set["d"] {
		if _, err := s.List.Remove(del); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	if set["s"] {
		if stifle < 0 {
			return fmt.Errorf("history: %w: negative limit %d", ErrHistoryUsage, stifle)
		}
		s.List.Stifle(stifle)
	}
	if unstifle {
		if limit, ok := s.List.Unstifle(); ok {
			fmt.Fprintf(w, "history was stifled to %d entries\n", limit)
		}
	}
	if set["r"] {
		if err := s.LoadFile(read); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	if set["w"] {
		if err := s.SaveFile(write); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	if set["a"] {
		if err := s.AppendFile(appendTo); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	if listing {
		return s.list(w, rest, showTime)
	}
	return nil
}

func (s *Session) list(w io.Writer, args []string, showTime bool) error {
	n := s.List.Len()
	switch len(args) {
	case 0:
	case 1:
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 0 {
			return fmt.Errorf("history: %w: bad count %q", ErrHistoryUsage, args[0])
		}
		n = min(n, m)
	default:
		return fmt.Errorf("history: %w: too many arguments", ErrHistoryUsage)
	}
	first := s.List.Base() + s.List.Len() - n
	for offset, e := range s.List.All() {
		if offset < first {
			continue
		}
		if showTime {
			ts := "-"
			if e.HasTime() {
				ts = e.Time.Format(timeLayout)
			}
			fmt.Fprintf(w, "%d  %s  %s\n", offset, ts, e.Line)
		} else {
			fmt.Fprintf(w, "%d  %s\n", offset, e.Line)
		}
	}
	return nil
}

