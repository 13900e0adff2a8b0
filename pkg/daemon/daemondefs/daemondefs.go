// Package daemondefs contains definitions used for the daemon.
//
// It is a separate package so that packages that only depend on the daemon
// API does not need to depend on the concrete implementation.
package daemondefs

import (
	"time"

	"github.com/luisbebop/histline/pkg/hist"
)

// Client represents a daemon client. Offsets are logical offsets into the
// shared history list.
type Client interface {
	ResetConn() error
	Close() error

	Pid() (int, error)
	SockPath() string
	Version() (int, error)

	Add(line, data string) (int, error)
	// AddCmd adds a line with a timestamp; a zero t means none.
	AddCmd(line string, t time.Time) (int, error)
	AddTime(t time.Time) error
	Get(offset int) (Entry, error)
	Replace(offset int, line, data string) (Entry, error)
	Remove(offset int) (Entry, error)
	Clear() error
	Stifle(max int) error
	Unstifle() (int, bool, error)
	State() (hist.State, error)
	Entries() ([]Entry, error)
	Search(query string, mode SearchMode) ([]int, error)
}

// Entry is an entry of the shared history.
type Entry struct {
	Offset int
	Line   string
	Data   string
	Time   time.Time
}

// SearchMode selects how Search matches lines.
type SearchMode string

// Search modes.
const (
	SearchSubstring SearchMode = "substring"
	SearchPrefix    SearchMode = "prefix"
	SearchFuzzy     SearchMode = "fuzzy"
)

// SpawnConfig keeps configurations for spawning the daemon.
type SpawnConfig struct {
	// BinPath is the path to the histline binary itself, used when forking.
	// If empty, it is automatically determined with os.Executable.
	BinPath string
	// DBPath is the path to the database.
	DBPath string
	// SockPath is the path to the socket on which the daemon will serve
	// requests.
	SockPath string
	// RunDir is the directory in which to place the daemon log file.
	RunDir string
}
