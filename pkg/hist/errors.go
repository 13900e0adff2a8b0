package hist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOffset is returned when an offset does not name a retained
	// entry.
	ErrInvalidOffset = errors.New("invalid history offset")
	// ErrEmptyHistory is returned by cursor operations on an empty list.
	ErrEmptyHistory = errors.New("history is empty")
	// ErrEndOfHistory is returned when the cursor cannot move any further.
	ErrEndOfHistory = errors.New("end of history")
	// ErrNoMatch is returned when a search finds nothing.
	ErrNoMatch = errors.New("no matching history entry")
)

// OffsetError records an offset that did not resolve against a list. It
// matches ErrInvalidOffset with errors.Is.
type OffsetError struct {
	Offset int
	Base   int
	Len    int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("invalid history offset %d, valid range is [%d, %d)",
		e.Offset, e.Base, e.Base+e.Len)
}

func (e *OffsetError) Is(target error) bool { return target == ErrInvalidOffset }
