package histutil

// PrefixSearch searches for an entry starting with prefix, beginning at the
// entry next to the recall cursor towards older entries if back is true and
// towards newer ones otherwise. The search wraps around and never matches the
// entry it started from. On success the recall cursor moves to the match.
func (h *History) PrefixSearch(prefix []rune, back bool) bool {
	n := len(h.entries)
	if n == 0 {
		return false
	}
	step := 1
	if back {
		step = n - 1
	}
	start := h.index
	if start < 0 || start >= n {
		start = n - 1
	}
	for i := (start + step) % n; i != start; i = (i + step) % n {
		if hasRunePrefix([]rune(h.entries[i]), prefix) {
			h.index = i
			h.previous = -1
			h.recallMostRecent = true
			return true
		}
	}
	return false
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

// Match is a position in the history.
type Match struct {
	// Entry index.
	Index int
	// Codepoint offset in the entry.
	Pos int
}

// FindSubstring searches for query as a literal substring, starting at offset
// from.Pos of entry from.Index and moving one offset at a time in direction
// dir (1 or -1). When an entry is exhausted the search continues with the
// next entry in direction dir, from its start when searching forward and
// from its end when searching backward. A backward search starting too close
// to the end of an entry for the query to fit starts at the last offset where
// it does. It returns false when the end of the history is reached without a
// match.
func (h *History) FindSubstring(query []rune, dir int, from Match) (Match, bool) {
	if len(query) == 0 || len(h.entries) == 0 {
		return from, false
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	index, pos := from.Index, from.Pos
	if index < 0 || index >= len(h.entries) {
		return from, false
	}
	line := []rune(h.entries[index])
	if dir < 0 && pos > len(line)-len(query) {
		pos = len(line) - len(query)
	}
	for {
		for pos >= 0 && pos+len(query) <= len(line) {
			if hasRunePrefix(line[pos:], query) {
				return Match{index, pos}, true
			}
			pos += dir
		}
		if dir > 0 && index >= len(h.entries)-1 || dir < 0 && index <= 0 {
			return from, false
		}
		index += dir
		line = []rune(h.entries[index])
		if dir > 0 {
			pos = 0
		} else {
			pos = len(line) - len(query)
		}
	}
}
