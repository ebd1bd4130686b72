package cli

import (
	"github.com/jarvisfriends/replxx/pkg/sys"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Completer provides completion candidates.
type Completer interface {
	// Complete is called with the text before the cursor and the number of
	// codepoints at its end that form the current word. It returns the
	// candidates, each of which replaces that word in full, and the number of
	// codepoints they actually replace, which may be narrower.
	Complete(line string, contextLen int) ([]string, int)
}

// CompleterFunc adapts a function to a Completer.
type CompleterFunc func(line string, contextLen int) ([]string, int)

// Complete calls f.
func (f CompleterFunc) Complete(line string, contextLen int) ([]string, int) {
	return f(line, contextLen)
}

// Hinter provides hints, shown after the cursor while typing.
type Hinter interface {
	// Hint is like Complete, and additionally receives and returns the color
	// for the hints.
	Hint(line string, contextLen int, color ui.Color) ([]string, int, ui.Color)
}

// HinterFunc adapts a function to a Hinter.
type HinterFunc func(line string, contextLen int, color ui.Color) ([]string, int, ui.Color)

// Hint calls f.
func (f HinterFunc) Hint(line string, contextLen int, color ui.Color) ([]string, int, ui.Color) {
	return f(line, contextLen, color)
}

// Highlighter colors the line.
type Highlighter interface {
	// Highlight is called with the whole line and a slice with one color per
	// codepoint, initially all ui.Default, which it may modify.
	Highlight(line string, colors []ui.Color)
}

// HighlighterFunc adapts a function to a Highlighter.
type HighlighterFunc func(line string, colors []ui.Color)

// Highlight calls f.
func (f HighlighterFunc) Highlight(line string, colors []ui.Color) {
	f(line, colors)
}

// The callbacks are user code running inside the edit loop. A panic is logged
// and treated as an empty result, so that the line can still be finished.

func callCompleter(c Completer, line string, contextLen int) (cands []string, n int) {
	defer func() {
		if r := recover(); r != nil {
			logPanic("completer", r)
			cands, n = nil, contextLen
		}
	}()
	cands, n = c.Complete(line, contextLen)
	return cands, clampContextLen(n, line)
}

func callHinter(h Hinter, line string, contextLen int, color ui.Color) (hints []string, n int, c ui.Color) {
	defer func() {
		if r := recover(); r != nil {
			logPanic("hinter", r)
			hints, n, c = nil, contextLen, color
		}
	}()
	hints, n, c = h.Hint(line, contextLen, color)
	return hints, clampContextLen(n, line), c
}

func callHighlighter(h Highlighter, line string, colors []ui.Color) {
	defer func() {
		if r := recover(); r != nil {
			logPanic("highlighter", r)
			for i := range colors {
				colors[i] = ui.Default
			}
		}
	}()
	h.Highlight(line, colors)
}

func logPanic(what string, r any) {
	logger.Printf("%s panicked: %v", what, r)
	logger.Print(sys.DumpStack())
}

func clampContextLen(n int, line string) int {
	if n < 0 {
		return 0
	}
	if l := len([]rune(line)); n > l {
		return l
	}
	return n
}
