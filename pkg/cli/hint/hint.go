// Package hint renders hints: suggestions shown after the line being edited,
// inline when there is one and on extra rows below the line when there are
// several.
package hint

import (
	"github.com/jarvisfriends/replxx/pkg/ui"
	"github.com/jarvisfriends/replxx/pkg/wcwidth"
)

// DefaultColor is the color hints are shown in unless the hinter picks
// another one.
const DefaultColor = ui.Gray

// NoSelection is the selection value when no hint is selected.
const NoSelection = -1

// NormalizeSelection wraps a selection that was moved past either end of a
// list of count hints. Moving before "none selected" selects the last hint,
// and moving after the last hint goes back to "none selected".
func NormalizeSelection(sel, count int) int {
	switch {
	case sel < NoSelection:
		return count - 1
	case sel >= count:
		return NoSelection
	default:
		return sel
	}
}

// Input is what Render needs to know.
type Input struct {
	Hints []string
	// Number of codepoints before the cursor that the hints complete.
	ContextLen int
	// The context itself.
	Context []rune
	Color   ui.Color
	// Current selection, possibly out of range after moving it.
	Selection int
	// Maximum number of rows for multiple hints; 0 disables them.
	MaxRows int
	// Screen column where the context starts.
	StartCol int
	// Screen column where the line ends.
	EndCol int
	// Screen width.
	Width int
	// Column width of a codepoint. Defaults to wcwidth.OfRune.
	RuneWidth func(rune) int
}

// Result is the rendered hints.
type Result struct {
	// Text shown right after the line.
	Inline ui.Text
	// Column width of Inline.
	InlineWidth int
	// Rows shown below the line.
	Rows []ui.Text
	// Normalized selection.
	Selection int
}

// Render renders hints.
func Render(in Input) Result {
	if in.RuneWidth == nil {
		in.RuneWidth = wcwidth.OfRune
	}
	res := Result{Selection: in.Selection}
	switch {
	case len(in.Hints) == 1:
		tail := tailOf(in.Hints[0], in.ContextLen)
		res.Inline = ui.T(tail, in.Color)
		res.InlineWidth = wcwidth.OfFunc(tail, in.RuneWidth)
	case len(in.Hints) > 1 && in.MaxRows > 0:
		count := len(in.Hints)
		res.Selection = NormalizeSelection(in.Selection, count)
		if res.Selection != NoSelection {
			tail := tailOf(in.Hints[res.Selection], in.ContextLen)
			if in.Width > 0 {
				tail = wcwidth.TrimFunc(tail, max(in.Width-in.EndCol, 0), in.RuneWidth)
			}
			res.Inline = ui.T(tail, in.Color)
			res.InlineWidth = wcwidth.OfFunc(tail, in.RuneWidth)
		}
		startCol := in.StartCol
		if in.Width > 0 {
			startCol %= in.Width
		}
		for row := 0; row < min(count, in.MaxRows); row++ {
			res.Rows = append(res.Rows, in.row(startCol, row, res.Selection))
		}
	}
	return res
}

// row renders one hint row: the context at the column it was typed in,
// followed by the rest of a hint. Rows list the hints after the selected one,
// and the row that would show the selected hint again shows only the context.
func (in Input) row(startCol, row, sel int) ui.Text {
	count := len(in.Hints)
	w := &rowWriter{width: in.Width, runeWidth: in.RuneWidth}
	for i := 0; i < startCol; i++ {
		w.write(" ", ui.Default)
	}
	w.write(string(in.Context), in.Color)
	hintNo := row + sel + 1
	if hintNo == count {
		return w.text
	} else if hintNo > count {
		hintNo--
	}
	w.write(tailOf(in.Hints[hintNo%count], in.ContextLen), in.Color)
	return w.text
}

type rowWriter struct {
	text      ui.Text
	col       int
	width     int
	runeWidth func(rune) int
}

func (w *rowWriter) write(s string, c ui.Color) {
	if w.width > 0 {
		s = wcwidth.TrimFunc(s, max(w.width-w.col, 0), w.runeWidth)
	}
	w.col += wcwidth.OfFunc(s, w.runeWidth)
	w.text = w.text.Append(s, c)
}

func tailOf(hint string, contextLen int) string {
	rs := []rune(hint)
	if contextLen >= len(rs) {
		return ""
	}
	return string(rs[contextLen:])
}
