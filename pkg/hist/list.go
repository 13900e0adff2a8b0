// Package hist implements the command history list.
//
// A List is an ordered log of lines, oldest first. Every entry ever added has
// a logical offset: the first entry gets offset 0, the next 1, and so on. When
// entries are dropped from the front, Base advances, so offsets issued earlier
// keep naming the same entries for as long as they are retained. Entries are
// addressed by logical offset in all operations except the recall cursor,
// which works on list positions.
//
// A List is not safe for concurrent use.
package hist

import (
	"iter"
	"time"

	"github.com/gammazero/deque"
)

// List is a history list. The zero value is an empty, unstifled list with
// base 0.
type List[D any] struct {
	entries deque.Deque[Entry[D]]
	base    int
	max     int
	stifled bool
	// Recall cursor; a position in [0, Len()].
	pos int
}

// NewList returns an empty list.
func NewList[D any]() *List[D] {
	return &List[D]{}
}

// Len returns the number of retained entries.
func (l *List[D]) Len() int { return l.entries.Len() }

// Base returns the logical offset of the oldest retained entry. It never
// decreases.
func (l *List[D]) Base() int { return l.base }

// Add appends a new entry without a timestamp. If the list is stifled and
// full, the oldest entry is dropped first; its data handle is not returned to
// anyone. A list stifled to 0 entries ignores Add.
func (l *List[D]) Add(line string, data D) {
	if l.stifled {
		if l.max == 0 {
			return
		}
		for l.entries.Len() >= l.max {
			l.evict()
		}
	}
	atEnd := l.pos >= l.entries.Len()
	l.entries.PushBack(Entry[D]{Line: line, Data: data})
	if atEnd {
		l.pos = l.entries.Len()
	}
}

// AddTime sets the timestamp of the newest entry, truncated to whole seconds.
// It does nothing on an empty list.
func (l *List[D]) AddTime(t time.Time) {
	n := l.entries.Len()
	if n == 0 {
		return
	}
	e := l.entries.At(n - 1)
	e.SetTime(t)
	l.entries.Set(n-1, e)
}

// Get returns the entry at the given logical offset.
func (l *List[D]) Get(offset int) (Entry[D], error) {
	i, err := l.resolve(offset)
	if err != nil {
		return Entry[D]{}, err
	}
	return l.entries.At(i), nil
}

// Line returns the line of the entry at the given logical offset.
func (l *List[D]) Line(offset int) (string, error) {
	e, err := l.Get(offset)
	return e.Line, err
}

// Replace replaces the line and data of the entry at the given logical
// offset, keeping its timestamp. It returns the previous entry so that the
// caller can dispose of its data.
func (l *List[D]) Replace(offset int, line string, data D) (Entry[D], error) {
	i, err := l.resolve(offset)
	if err != nil {
		return Entry[D]{}, err
	}
	old := l.entries.At(i)
	l.entries.Set(i, Entry[D]{Line: line, Data: data, Time: old.Time})
	return old, nil
}

// Remove removes and returns the entry at the given logical offset. Newer
// entries move down by one offset, except when the oldest entry is removed: in
// that case Base advances and no other offset changes.
func (l *List[D]) Remove(offset int) (Entry[D], error) {
	i, err := l.resolve(offset)
	if err != nil {
		return Entry[D]{}, err
	}
	e := l.entries.Remove(i)
	if i == 0 {
		l.base++
	}
	if l.pos > i {
		l.pos--
	}
	return e, nil
}

// Clear removes all entries. Base is unchanged, so every offset issued so far
// becomes invalid.
func (l *List[D]) Clear() {
	l.entries.Clear()
	l.pos = 0
}

// Stifle limits the list to max entries, dropping the oldest ones if there are
// more. A negative max is treated as 0.
func (l *List[D]) Stifle(max int) {
	if max < 0 {
		max = 0
	}
	l.max, l.stifled = max, true
	for l.entries.Len() > max {
		l.evict()
	}
}

// Unstifle removes the limit on the number of entries. It returns the previous
// limit, and whether there was one.
func (l *List[D]) Unstifle() (int, bool) {
	max, stifled := l.max, l.stifled
	l.max, l.stifled = 0, false
	return max, stifled
}

// IsStifled reports whether the list has a limit on the number of entries.
func (l *List[D]) IsStifled() bool { return l.stifled }

// MaxEntries returns the limit on the number of entries, and whether there is
// one.
func (l *List[D]) MaxEntries() (int, bool) { return l.max, l.stifled }

// Entries returns a copy of all entries, oldest first.
func (l *List[D]) Entries() []Entry[D] {
	entries := make([]Entry[D], l.entries.Len())
	for i := range entries {
		entries[i] = l.entries.At(i)
	}
	return entries
}

// All returns a sequence of the retained entries with their logical offsets,
// oldest first. The list must not be modified during iteration.
func (l *List[D]) All() iter.Seq2[int, Entry[D]] {
	return func(yield func(int, Entry[D]) bool) {
		for i := 0; i < l.entries.Len(); i++ {
			if !yield(l.base+i, l.entries.At(i)) {
				return
			}
		}
	}
}

// TotalBytes returns the total length of all lines, in bytes.
func (l *List[D]) TotalBytes() int {
	n := 0
	for i := 0; i < l.entries.Len(); i++ {
		n += len(l.entries.At(i).Line)
	}
	return n
}

func (l *List[D]) resolve(offset int) (int, error) {
	i := offset - l.base
	if i < 0 || i >= l.entries.Len() {
		return 0, &OffsetError{Offset: offset, Base: l.base, Len: l.entries.Len()}
	}
	return i, nil
}

func (l *List[D]) evict() {
	l.entries.PopFront()
	l.base++
	if l.pos > 0 {
		l.pos--
	}
}
