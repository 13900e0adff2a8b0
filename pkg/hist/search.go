package hist

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Direction is the direction of a search.
type Direction int

const (
	// Backward searches towards older entries.
	Backward Direction = iota
	// Forward searches towards newer entries.
	Forward
)

// Search looks for str in the entries starting from the cursor. On success,
// the cursor is moved to the matching entry and the byte index of str within
// its line is returned; a backward search finds the last occurrence within a
// line. ErrNoMatch is returned if str is empty or not found.
func (l *List[D]) Search(str string, dir Direction) (int, error) {
	i, idx, err := l.search(str, dir, l.pos, false)
	if err != nil {
		return -1, err
	}
	l.pos = i
	return idx, nil
}

// SearchPrefix is like Search, but only matches entries that start with str.
// The returned index is always 0.
func (l *List[D]) SearchPrefix(str string, dir Direction) (int, error) {
	i, idx, err := l.search(str, dir, l.pos, true)
	if err != nil {
		return -1, err
	}
	l.pos = i
	return idx, nil
}

// SearchPos searches for str starting at list position pos without moving the
// cursor, and returns the logical offset of the matching entry.
func (l *List[D]) SearchPos(str string, dir Direction, pos int) (int, error) {
	if pos < 0 || pos > l.entries.Len() {
		return -1, ErrNoMatch
	}
	i, _, err := l.search(str, dir, pos, false)
	if err != nil {
		return -1, err
	}
	return l.base + i, nil
}

func (l *List[D]) search(str string, dir Direction, pos int, anchored bool) (int, int, error) {
	n := l.entries.Len()
	if str == "" || n == 0 {
		return -1, -1, ErrNoMatch
	}
	reverse := dir == Backward
	if !reverse && pos >= n {
		return -1, -1, ErrNoMatch
	}
	i := pos
	if reverse && i >= n {
		i = n - 1
	}
	for ; i >= 0 && i < n; i = step(i, reverse) {
		line := l.entries.At(i).Line
		if anchored {
			if strings.HasPrefix(line, str) {
				return i, 0, nil
			}
			continue
		}
		var idx int
		if reverse {
			idx = strings.LastIndex(line, str)
		} else {
			idx = strings.Index(line, str)
		}
		if idx >= 0 {
			return i, idx, nil
		}
	}
	return -1, -1, ErrNoMatch
}

func step(i int, reverse bool) int {
	if reverse {
		return i - 1
	}
	return i + 1
}

// FuzzyFind returns the logical offsets of entries whose lines fuzzily match
// pattern, ignoring case. Closer matches come first; among equally close
// matches, newer entries come first.
func (l *List[D]) FuzzyFind(pattern string) []int {
	lines := make([]string, l.entries.Len())
	for i := range lines {
		lines[i] = l.entries.At(i).Line
	}
	ranks := fuzzy.RankFindFold(pattern, lines)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex > ranks[j].OriginalIndex
	})
	offsets := make([]int, len(ranks))
	for i, r := range ranks {
		offsets[i] = l.base + r.OriginalIndex
	}
	return offsets
}
