package cli

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jarvisfriends/replxx/pkg/cli/hint"
	"github.com/jarvisfriends/replxx/pkg/cli/layout"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
	"github.com/jarvisfriends/replxx/pkg/ui"
	"github.com/jarvisfriends/replxx/pkg/wcwidth"
)

// What a refresh does with hints.
type hintAction int

const (
	// Ask the hinter again and reset the selection.
	hintRegenerate hintAction = iota
	// Ask the hinter again, keeping the selection.
	hintRepaint
	// Show no hints.
	hintSkip
)

// refresh redraws the prompt and the line.
func (ed *Editor) refresh(ha hintAction) {
	ed.render(ed.lineFrame(ha))
}

// refreshAtEnd is like refresh, but with the cursor shown at the end of the
// line.
func (ed *Editor) refreshAtEnd(ha hintAction) {
	cursor := ed.buf.Cursor()
	ed.buf.SetCursor(ed.buf.Len())
	ed.refresh(ha)
	ed.buf.SetCursor(cursor)
}

func (ed *Editor) render(f term.Frame) {
	f.Fresh = ed.fresh
	f.NoColor = ed.cfg.NoColor
	if err := ed.tty.Refresh(f); err != nil {
		logger.Println("refresh:", err)
	}
	ed.fresh = false
}

// lineFrame builds the frame for the prompt, the line and the hints.
func (ed *Editor) lineFrame(ha hintAction) term.Frame {
	text := ed.buf.Runes()
	cursor := ed.buf.Cursor()
	promptEnd, promptNewline := promptLayout(ed.prompt, ed.width, ed.runeWidth)

	var display ui.Text
	if ed.cfg.NoColor {
		display = ui.T(string(text), ui.Default)
	} else {
		display = ed.colorize(text, cursor)
	}

	lineCols := ed.buf.ColumnWidth(0, len(text))
	lineEnd := layout.Advance(promptEnd, ed.width, lineCols)
	h := ed.hints(ha, promptEnd, lineEnd)
	display = display.Concat(h.Inline)
	for _, row := range h.Rows {
		display = display.Append("\n", ui.Default).Concat(row)
	}

	end := layout.Advance(promptEnd, ed.width, lineCols+h.InlineWidth)
	wrapNewline := false
	if end.Col == 0 && end.Row > promptEnd.Row {
		// The terminal keeps the cursor on the last column after writing it.
		if len(h.Rows) == 0 {
			wrapNewline = true
		} else {
			end.Row += len(h.Rows) - 1
		}
	} else {
		end.Row += len(h.Rows)
	}

	return term.Frame{
		Prompt:        ed.prompt,
		PromptNewline: promptNewline,
		Display:       display,
		End:           end,
		WrapNewline:   wrapNewline,
		Cursor:        layout.Advance(promptEnd, ed.width, ed.buf.ColumnWidth(0, cursor)),
	}
}

// promptLayout returns where the prompt ends, relative to its first row, and
// whether it fills its last row exactly, in which case a newline is needed to
// get the cursor to the next row. Escape sequences in the prompt take no
// space. A non-positive width disables wrapping.
func promptLayout(prompt string, width int, runeWidth func(rune) int) (layout.Pos, bool) {
	lines := strings.Split(ansi.Strip(prompt), "\n")
	row := 0
	for _, line := range lines[:len(lines)-1] {
		w := wcwidth.OfFunc(line, runeWidth)
		if w == 0 || width <= 0 {
			row++
		} else {
			row += (w + width - 1) / width
		}
	}
	w := wcwidth.OfFunc(lines[len(lines)-1], runeWidth)
	end := layout.Advance(layout.Pos{Row: row}, width, w)
	return end, width > 0 && w > 0 && w%width == 0
}

// colorize colors the line with the highlighter and marks the bracket
// matching the one under the cursor.
func (ed *Editor) colorize(text []rune, cursor int) ui.Text {
	colors := make([]ui.Color, len(text))
	if ed.highlighter != nil {
		callHighlighter(ed.highlighter, string(text), colors)
	}
	if i, unbalanced := matchBrace(text, cursor); i >= 0 {
		if unbalanced {
			colors[i] = ui.Error
		} else {
			colors[i] = ui.BrightRed
		}
	}
	var t ui.Text
	for i, r := range text {
		t = t.Append(string(r), colors[i])
	}
	return t
}

var bracePairs = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// matchBrace finds the bracket matching the one at pos. It returns -1 if there
// is no bracket at pos or it has no match. The second return value reports
// whether brackets of other kinds between the two are unbalanced.
func matchBrace(text []rune, pos int) (int, bool) {
	if pos < 0 || pos >= len(text) {
		return -1, false
	}
	var open, close rune
	dir := 1
	if c, ok := bracePairs[text[pos]]; ok {
		open, close = text[pos], c
	} else {
		for o, c := range bracePairs {
			if c == text[pos] {
				open, close, dir = o, c, -1
			}
		}
		if dir == 1 {
			return -1, false
		}
	}
	depth, other := dir, 0
	for i := pos + dir; 0 <= i && i < len(text); i += dir {
		switch r := text[i]; r {
		case open:
			depth++
		case close:
			depth--
		case '(', '[', '{':
			other++
		case ')', ']', '}':
			other--
		}
		if depth == 0 {
			return i, other != 0
		}
	}
	return -1, false
}

// hints asks the hinter for hints and renders them. Hints are only shown with
// colors on, and when the cursor is at the end of the line.
func (ed *Editor) hints(ha hintAction, promptEnd, lineEnd layout.Pos) hint.Result {
	cursor := ed.buf.Cursor()
	if ha == hintSkip || ed.cfg.NoColor || ed.hinter == nil || cursor != ed.buf.Len() {
		return hint.Result{Selection: ed.hintSelection}
	}
	if ha == hintRegenerate {
		ed.hintSelection = hint.NoSelection
	}
	line := string(ed.buf.Slice(0, cursor))
	hints, contextLen, color := callHinter(ed.hinter, line, ed.buf.ContextLength(), hint.DefaultColor)
	start := cursor - contextLen
	res := hint.Render(hint.Input{
		Hints:      hints,
		ContextLen: contextLen,
		Context:    ed.buf.Slice(start, cursor),
		Color:      color,
		Selection:  ed.hintSelection,
		MaxRows:    ed.cfg.MaxHintRows,
		StartCol:   layout.Advance(promptEnd, ed.width, ed.buf.ColumnWidth(0, start)).Col,
		EndCol:     lineEnd.Col,
		Width:      ed.width,
		RuneWidth:  ed.runeWidth,
	})
	ed.hintSelection = res.Selection
	return res
}
