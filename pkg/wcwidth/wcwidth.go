// Package wcwidth provides utilities for determining the column width of
// characters when displayed on the terminal.
package wcwidth

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

var (
	overrideMutex sync.RWMutex
	override      = map[rune]int{}
	cond          = newCondition()
)

func newCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	// East Asian ambiguous characters are narrow on most terminals.
	c.EastAsianWidth = false
	return c
}

// OfRune returns the column width of a rune.
func OfRune(r rune) int {
	if w, ok := overrideWidth(r); ok {
		return w
	}
	return cond.RuneWidth(r)
}

func overrideWidth(r rune) (int, bool) {
	overrideMutex.RLock()
	defer overrideMutex.RUnlock()
	w, ok := override[r]
	return w, ok
}

// Override overrides the column width of a rune to be a specific non-negative
// value. A negative width removes the override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	override[r] = w
}

// Unoverride removes the column width override of a rune.
func Unoverride(r rune) {
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	delete(override, r)
}

// Of returns the column width of a string, assuming no soft line breaks.
func Of(s string) int { return OfFunc(s, OfRune) }

// OfFunc is like Of, but measures runes with f.
func OfFunc(s string, f func(rune) int) int {
	w := 0
	for _, r := range s {
		w += f(r)
	}
	return w
}

// Trim trims the string s so that it is no wider than wmax.
func Trim(s string, wmax int) string { return TrimFunc(s, wmax, OfRune) }

// TrimFunc is like Trim, but measures runes with f.
func TrimFunc(s string, wmax int, f func(rune) int) string {
	w := 0
	for i, r := range s {
		w += f(r)
		if w > wmax {
			return s[:i]
		}
	}
	return s
}

// Force forces the string s to the given column width by trimming and padding.
func Force(s string, width int) string {
	w := 0
	for i, r := range s {
		w0 := OfRune(r)
		w += w0
		if w > width {
			w -= w0
			s = s[:i]
			break
		}
	}
	return s + strings.Repeat(" ", width-w)
}

// TrimEachLine trims each line of s so that it is no wider than the specified
// width.
func TrimEachLine(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = Trim(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
