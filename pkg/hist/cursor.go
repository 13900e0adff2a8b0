package hist

// The recall cursor is a list position, not a logical offset: 0 is the oldest
// retained entry and Len() is just past the newest one, where a front end
// shows an empty line.

// SetPos moves the cursor to pos. It returns false and leaves the cursor alone
// if pos is outside [0, Len()].
func (l *List[D]) SetPos(pos int) bool {
	if pos < 0 || pos > l.entries.Len() {
		return false
	}
	l.pos = pos
	return true
}

// ResetPos moves the cursor just past the newest entry.
func (l *List[D]) ResetPos() { l.pos = l.entries.Len() }

// Where returns the cursor position.
func (l *List[D]) Where() int { return l.pos }

// Current returns the entry under the cursor.
func (l *List[D]) Current() (Entry[D], error) {
	if l.entries.Len() == 0 {
		return Entry[D]{}, ErrEmptyHistory
	}
	if l.pos >= l.entries.Len() {
		return Entry[D]{}, ErrEndOfHistory
	}
	return l.entries.At(l.pos), nil
}

// Previous moves the cursor back by one entry and returns that entry.
func (l *List[D]) Previous() (Entry[D], error) {
	if l.entries.Len() == 0 {
		return Entry[D]{}, ErrEmptyHistory
	}
	if l.pos == 0 {
		return Entry[D]{}, ErrEndOfHistory
	}
	l.pos--
	return l.entries.At(l.pos), nil
}

// Next moves the cursor forward by one entry and returns that entry. It fails
// without moving when the cursor is on or past the newest entry.
func (l *List[D]) Next() (Entry[D], error) {
	if l.entries.Len() == 0 {
		return Entry[D]{}, ErrEmptyHistory
	}
	if l.pos+1 >= l.entries.Len() {
		return Entry[D]{}, ErrEndOfHistory
	}
	l.pos++
	return l.entries.At(l.pos), nil
}

// State is a snapshot of the bookkeeping of a List.
type State struct {
	Pos     int
	Len     int
	Base    int
	Max     int
	Stifled bool
}

// State returns a snapshot of the list's cursor, size and limit.
func (l *List[D]) State() State {
	return State{l.pos, l.entries.Len(), l.base, l.max, l.stifled}
}

// SetState restores the cursor and the limit from a snapshot. Entries are not
// restored; the cursor is clamped to the current length, and restoring a limit
// evicts entries like Stifle does.
func (l *List[D]) SetState(s State) {
	if s.Stifled {
		l.Stifle(s.Max)
	} else {
		l.Unstifle()
	}
	l.pos = min(max(s.Pos, 0), l.entries.Len())
}
