// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoMatchingCmd is the error returned when a Cmd, NextCmd or PrevCmd query
// completes with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// ErrNoMeta is returned by Meta when the key is not set.
var ErrNoMeta = errors.New("no such metadata key")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string, t time.Time) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (Cmd, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	NextCmd(from int, prefix string) (Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)

	Meta(key string) (string, error)
	SetMeta(key, value string) error
	DelMeta(key string) error
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
	// The zero value means no timestamp was recorded.
	Time time.Time
}
