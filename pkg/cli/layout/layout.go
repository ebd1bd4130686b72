// Package layout computes where text lands on a terminal that wraps long
// lines.
package layout

// Pos is a position on the screen, relative to the row where the prompt
// starts.
type Pos struct {
	Row int
	Col int
}

// Advance returns the position reached after advancing n columns from start
// on a screen that is width columns wide. The cursor wraps to the first column
// of the next row whenever it reaches column width, including when the last
// column advanced lands exactly there. A non-positive width disables
// wrapping.
func Advance(start Pos, width, n int) Pos {
	if width <= 0 {
		return Pos{start.Row, start.Col + n}
	}
	total := start.Col + n
	return Pos{start.Row + total/width, total % width}
}

// Locate returns the positions of the cursor and of the end of the content,
// given the column widths of the text before the cursor and of the whole
// text, both starting from start.
func Locate(start Pos, width, toCursor, toEnd int) (cursor, end Pos) {
	return Advance(start, width, toCursor), Advance(start, width, toEnd)
}

// Rows returns the number of screen rows occupied by content that ends at
// end.
func Rows(end Pos) int { return end.Row + 1 }
