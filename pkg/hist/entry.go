package hist

import "time"

// Entry is a line in a history list.
//
// Data is an application-defined handle; its zero value means no data. The
// list never inspects it: when an entry is removed or replaced, the handle is
// handed back to the caller, who owns it.
type Entry[D any] struct {
	Line string
	Data D
	// The zero value means the entry has no timestamp.
	Time time.Time
}

// SetTime sets the timestamp, truncated to whole seconds.
func (e *Entry[D]) SetTime(t time.Time) {
	e.Time = truncate(t)
}

// HasTime reports whether the entry has a timestamp.
func (e Entry[D]) HasTime() bool { return !e.Time.IsZero() }

func truncate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Unix(t.Unix(), 0)
}
