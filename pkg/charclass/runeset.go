package charclass

// RuneSet is a set of runes that remembers insertion order. The zero value is
// an empty set ready to use.
type RuneSet struct {
	runes []rune
	index map[rune]struct{}
}

// NewRuneSet returns a set holding the runes of s, in order, without
// duplicates.
func NewRuneSet(s string) RuneSet {
	var set RuneSet
	set.Set([]rune(s))
	return set
}

// Contains reports whether r is in the set.
func (s RuneSet) Contains(r rune) bool {
	_, ok := s.index[r]
	return ok
}

// Add adds r to the end of the set. It does nothing if r is already present.
func (s *RuneSet) Add(r rune) {
	if s.Contains(r) {
		return
	}
	if s.index == nil {
		s.index = make(map[rune]struct{})
	}
	s.index[r] = struct{}{}
	s.runes = append(s.runes, r)
}

// Remove removes r from the set. It does nothing if r is absent.
func (s *RuneSet) Remove(r rune) {
	if !s.Contains(r) {
		return
	}
	delete(s.index, r)
	for i, x := range s.runes {
		if x == r {
			s.runes = append(s.runes[:i:i], s.runes[i+1:]...)
			break
		}
	}
}

// Set replaces the content of the set with runes.
func (s *RuneSet) Set(runes []rune) {
	*s = RuneSet{}
	for _, r := range runes {
		s.Add(r)
	}
}

// Runes returns the runes in insertion order.
func (s RuneSet) Runes() []rune {
	return append([]rune(nil), s.runes...)
}

// Len returns the number of runes in the set.
func (s RuneSet) Len() int { return len(s.runes) }

// String returns the runes in insertion order as a string.
func (s RuneSet) String() string { return string(s.runes) }

// Clone returns a copy of the set that shares no state with s.
func (s RuneSet) Clone() RuneSet {
	var c RuneSet
	c.Set(s.runes)
	return c
}
