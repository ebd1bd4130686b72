// Package histutil implements the line history: an ordered list of entries
// with a recall cursor, searches over it, and persistence.
package histutil

import (
	"errors"

	"github.com/jarvisfriends/replxx/pkg/logutil"
)

var logger = logutil.GetLogger("[histutil] ")

// ErrEndOfHistory is returned when moving past either end of the history.
var ErrEndOfHistory = errors.New("end of history")

// DefaultMaxSize is the default maximum number of entries.
const DefaultMaxSize = 1000

// History is an ordered list of lines, oldest first, with a recall cursor.
//
// While a line is being edited the last entry is a provisional copy of it,
// added by BeginEdit; navigation then never needs to treat the live line
// specially. The provisional entry is removed with DropLast when the line is
// committed or aborted.
type History struct {
	entries []string
	maxSize int
	// Recall cursor.
	index int
	// Entry that was recalled when the last line was committed, or -1.
	previous         int
	recallMostRecent bool
}

// New creates an empty History that holds at most maxSize entries. A
// negative maxSize selects DefaultMaxSize.
func New(maxSize int) *History {
	if maxSize < 0 {
		maxSize = DefaultMaxSize
	}
	return &History{maxSize: maxSize, previous: -1}
}

// Size returns the number of entries.
func (h *History) Size() int { return len(h.entries) }

// MaxSize returns the maximum number of entries.
func (h *History) MaxSize() int { return h.maxSize }

// At returns the entry at i.
func (h *History) At(i int) string { return h.entries[i] }

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string { return append([]string(nil), h.entries...) }

// Index returns the position of the recall cursor.
func (h *History) Index() int { return h.index }

// Current returns the entry under the recall cursor, or "" if the history is
// empty.
func (h *History) Current() string {
	if h.index < 0 || h.index >= len(h.entries) {
		return ""
	}
	return h.entries[h.index]
}

// IsLast reports whether the recall cursor is on the last entry.
func (h *History) IsLast() bool { return h.index == len(h.entries)-1 }

// Add appends a line. Nothing is added when the history is disabled with a
// maximum size of 0, when the line is empty or when it equals the last entry.
// The oldest entry is evicted when the history is full.
func (h *History) Add(line string) {
	if h.maxSize == 0 || line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.push(line)
}

// BeginEdit adds the provisional entry for a new line with the given initial
// content and moves the recall cursor to it. The provisional entry may exceed
// the maximum size by one and is never deduplicated.
func (h *History) BeginEdit(line string) {
	h.entries = append(h.entries, line)
	h.ResetPos(-1)
}

func (h *History) push(line string) {
	if h.maxSize > 0 && len(h.entries) >= h.maxSize {
		h.entries = h.entries[1:]
		if h.previous >= 0 {
			h.previous--
		}
		if h.index > 0 {
			h.index--
		}
	}
	h.entries = append(h.entries, line)
}

// UpdateLast replaces the last entry, which holds the provisional line.
func (h *History) UpdateLast(line string) {
	if n := len(h.entries); n > 0 {
		h.entries[n-1] = line
	}
}

// DropLast removes the last entry.
func (h *History) DropLast() {
	if n := len(h.entries); n > 0 {
		h.entries = h.entries[:n-1]
		if h.index >= len(h.entries) {
			h.index = len(h.entries) - 1
		}
		if h.previous >= len(h.entries) {
			h.previous = -1
		}
	}
}

// CommitIndex records the recalled entry when a line is committed, so that
// the next navigation to a newer entry on the following line resumes right
// after it.
func (h *History) CommitIndex() {
	if h.recallMostRecent {
		h.previous = h.index
	} else {
		h.previous = -1
	}
}

// ResetPos moves the recall cursor to i; -1 means the last entry.
func (h *History) ResetPos(i int) {
	if i == -1 || i >= len(h.entries) {
		i = len(h.entries) - 1
	}
	h.index = i
}

// SetRecallMostRecent marks the current entry as recalled by the user.
func (h *History) SetRecallMostRecent() { h.recallMostRecent = true }

// ResetRecallMostRecent forgets that an entry was recalled. It is called on
// every edit that is not a history navigation.
func (h *History) ResetRecallMostRecent() { h.recallMostRecent = false }

// RecallMostRecent reports whether the current entry was recalled.
func (h *History) RecallMostRecent() bool { return h.recallMostRecent }

// Move moves the recall cursor one entry towards older entries if up is true,
// and towards newer ones otherwise. It returns ErrEndOfHistory, leaving the
// cursor alone, when there is no entry in that direction.
func (h *History) Move(up bool) error {
	target := h.index + 1
	if up {
		target = h.index - 1
	}
	if h.previous >= 0 {
		if !up {
			target = h.previous + 1
		}
		h.previous = -1
	}
	if target < 0 || target >= len(h.entries) {
		return ErrEndOfHistory
	}
	h.index = target
	h.recallMostRecent = true
	return nil
}

// Jump moves the recall cursor to the first entry if start is true, and to
// the last one otherwise.
func (h *History) Jump(start bool) {
	if len(h.entries) == 0 {
		return
	}
	if start {
		h.index = 0
	} else {
		h.index = len(h.entries) - 1
	}
	h.previous = -1
	h.recallMostRecent = true
}

// SetMaxSize changes the maximum number of entries, evicting the oldest
// entries if needed. A size of 0 clears the history and disables it. Negative
// sizes are ignored.
func (h *History) SetMaxSize(n int) {
	if n < 0 {
		return
	}
	h.maxSize = n
	if excess := len(h.entries) - n; excess > 0 {
		logger.Printf("evicting %d entries for new size %d", excess, n)
		h.entries = append([]string(nil), h.entries[excess:]...)
		h.index -= excess
		if h.index < 0 && len(h.entries) > 0 {
			h.index = 0
		}
		h.previous -= excess
		if h.previous < 0 {
			h.previous = -1
		}
	}
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
	h.index = 0
	h.previous = -1
	h.recallMostRecent = false
}
