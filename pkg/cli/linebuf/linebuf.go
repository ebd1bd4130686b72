// Package linebuf implements the buffer of the line being edited.
//
// A Buffer keeps the text as a slice of codepoints together with the column
// width of every codepoint, a cursor and a mark. All positions are codepoint
// offsets and are always within [0, Len()].
package linebuf

import (
	"unicode"

	"github.com/jarvisfriends/replxx/pkg/wcwidth"
)

// Buffer is the line being edited.
type Buffer struct {
	text   []rune
	widths []uint8
	cursor int
	mark   int
	breaks BreakSet
	width  func(rune) int
}

// New creates an empty Buffer. If width is nil, wcwidth.OfRune is used.
func New(breaks BreakSet, width func(rune) int) *Buffer {
	if width == nil {
		width = wcwidth.OfRune
	}
	return &Buffer{breaks: breaks, width: width}
}

// Len returns the number of codepoints in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// String returns the content of the buffer.
func (b *Buffer) String() string { return string(b.text) }

// Runes returns a copy of the content of the buffer.
func (b *Buffer) Runes() []rune { return append([]rune(nil), b.text...) }

// At returns the codepoint at i.
func (b *Buffer) At(i int) rune { return b.text[i] }

// Slice returns a copy of the codepoints in [from, to).
func (b *Buffer) Slice(from, to int) []rune {
	return append([]rune(nil), b.text[from:to]...)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamping it to [0, Len()].
func (b *Buffer) SetCursor(i int) { b.cursor = b.clamp(i) }

// Mark returns the mark position.
func (b *Buffer) Mark() int { return b.mark }

// SetMark moves the mark, clamping it to [0, Len()].
func (b *Buffer) SetMark(i int) { b.mark = b.clamp(i) }

// Breaks returns the break character set of the buffer.
func (b *Buffer) Breaks() BreakSet { return b.breaks }

// SetBreaks replaces the break character set.
func (b *Buffer) SetBreaks(s BreakSet) { b.breaks = s }

func (b *Buffer) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(b.text) {
		return len(b.text)
	}
	return i
}

func (b *Buffer) widthOf(r rune) uint8 {
	w := b.width(r)
	if w < 0 {
		w = 0
	} else if w > 2 {
		w = 2
	}
	return uint8(w)
}

// Insert inserts rs at the cursor and moves the cursor past them.
func (b *Buffer) Insert(rs ...rune) {
	at := b.cursor
	b.InsertAt(at, rs...)
	b.cursor = at + len(rs)
}

// InsertAt inserts rs at position at. The cursor and the mark move along with
// the text after at.
func (b *Buffer) InsertAt(at int, rs ...rune) {
	if len(rs) == 0 {
		return
	}
	at = b.clamp(at)
	n := len(rs)
	b.text = append(b.text, rs...)
	copy(b.text[at+n:], b.text[at:])
	copy(b.text[at:], rs)
	b.widths = append(b.widths, make([]uint8, n)...)
	copy(b.widths[at+n:], b.widths[at:])
	for i, r := range rs {
		b.widths[at+i] = b.widthOf(r)
	}
	if b.cursor > at {
		b.cursor += n
	}
	if b.mark > at {
		b.mark += n
	}
}

// Erase removes up to n codepoints starting at at, and returns the removed
// codepoints. Positions inside the erased span collapse to at.
func (b *Buffer) Erase(at, n int) []rune {
	at = b.clamp(at)
	if n > len(b.text)-at {
		n = len(b.text) - at
	}
	if n <= 0 {
		return nil
	}
	removed := b.Slice(at, at+n)
	b.text = append(b.text[:at], b.text[at+n:]...)
	b.widths = append(b.widths[:at], b.widths[at+n:]...)
	b.cursor = shiftErased(b.cursor, at, n)
	b.mark = shiftErased(b.mark, at, n)
	return removed
}

func shiftErased(pos, at, n int) int {
	switch {
	case pos >= at+n:
		return pos - n
	case pos > at:
		return at
	default:
		return pos
	}
}

// Set replaces the whole content and puts the cursor and the mark at the end.
func (b *Buffer) Set(rs []rune) {
	b.text = append(b.text[:0], rs...)
	b.widths = b.widths[:0]
	for _, r := range rs {
		b.widths = append(b.widths, b.widthOf(r))
	}
	b.cursor = len(b.text)
	b.mark = len(b.text)
}

// SetString is like Set but takes a string.
func (b *Buffer) SetString(s string) { b.Set([]rune(s)) }

// SetAt replaces the codepoint at i.
func (b *Buffer) SetAt(i int, r rune) {
	b.text[i] = r
	b.widths[i] = b.widthOf(r)
}

// Width returns the column width of the codepoint at i.
func (b *Buffer) Width(i int) int { return int(b.widths[i]) }

// ColumnWidth returns the total column width of the codepoints in [from, to).
func (b *Buffer) ColumnWidth(from, to int) int {
	w := 0
	for _, cw := range b.widths[from:to] {
		w += int(cw)
	}
	return w
}

// IsBreak reports whether r is a word break character of this buffer.
func (b *Buffer) IsBreak(r rune) bool { return b.breaks.Contains(r) }

// ContextLength returns the number of codepoints before the cursor that
// belong to the current word.
func (b *Buffer) ContextLength() int {
	i := b.cursor
	for i > 0 && !b.IsBreak(b.text[i-1]) {
		i--
	}
	return b.cursor - i
}

// WordStartBefore returns the start of the word before i, skipping break
// characters immediately before i.
func (b *Buffer) WordStartBefore(i int) int {
	for i > 0 && b.IsBreak(b.text[i-1]) {
		i--
	}
	for i > 0 && !b.IsBreak(b.text[i-1]) {
		i--
	}
	return i
}

// WordEndAfter returns the end of the word after i, skipping break characters
// at i.
func (b *Buffer) WordEndAfter(i int) int {
	for i < len(b.text) && b.IsBreak(b.text[i]) {
		i++
	}
	for i < len(b.text) && !b.IsBreak(b.text[i]) {
		i++
	}
	return i
}

// SpaceWordStartBefore is like WordStartBefore, but only whitespace separates
// words.
func (b *Buffer) SpaceWordStartBefore(i int) int {
	for i > 0 && unicode.IsSpace(b.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.text[i-1]) {
		i--
	}
	return i
}

// Transpose swaps the two codepoints before the cursor when it is at the end
// of the line, and the codepoints around the cursor otherwise, then advances
// the cursor. It returns false if there is nothing to swap.
func (b *Buffer) Transpose() bool {
	n := len(b.text)
	if b.cursor == 0 || n < 2 {
		return false
	}
	left := b.cursor - 1
	if b.cursor == n {
		left = n - 2
	}
	b.text[left], b.text[left+1] = b.text[left+1], b.text[left]
	b.widths[left], b.widths[left+1] = b.widths[left+1], b.widths[left]
	if b.cursor != n {
		b.cursor++
	}
	return true
}

// CaseOp selects the conversion done by ChangeWordCase.
type CaseOp int

// Values for CaseOp.
const (
	Capitalize CaseOp = iota
	Lowercase
	Uppercase
)

// ChangeWordCase converts the ASCII letters of the word at or after the
// cursor, and moves the cursor to the end of that word. It returns false if
// the cursor is at the end of the buffer.
func (b *Buffer) ChangeWordCase(op CaseOp) bool {
	i := b.cursor
	if i >= len(b.text) {
		return false
	}
	for i < len(b.text) && b.IsBreak(b.text[i]) {
		i++
	}
	first := true
	for ; i < len(b.text) && !b.IsBreak(b.text[i]); i++ {
		r := b.text[i]
		switch {
		case op == Uppercase || (op == Capitalize && first):
			if 'a' <= r && r <= 'z' {
				b.SetAt(i, r-'a'+'A')
			}
		default:
			if 'A' <= r && r <= 'Z' {
				b.SetAt(i, r-'A'+'a')
			}
		}
		first = false
	}
	b.cursor = i
	return true
}
