package term

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jarvisfriends/replxx/pkg/cli/layout"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Frame is one full rendering of the prompt and the edited line. All positions
// are relative to the row the prompt starts on.
type Frame struct {
	// Prompt is written verbatim, including any escape sequences it carries.
	Prompt string
	// PromptNewline requests a newline after the prompt. It is needed when the
	// prompt ends exactly at the right margin, where terminals leave the
	// cursor in a pending-wrap state.
	PromptNewline bool
	// Display is the line as it should appear, followed by any hints.
	Display ui.Text
	// NoColor causes Display to be written without any styling.
	NoColor bool
	// Fresh means the terminal cursor is at the start of an empty row, and
	// whatever was rendered before has scrolled away or been cleared. When it
	// is false, the writer moves back to where the previous frame started.
	Fresh bool
	// End is where the terminal cursor is after Display is written.
	End layout.Pos
	// WrapNewline requests a newline after Display. It is needed when Display
	// ends exactly at the right margin.
	WrapNewline bool
	// Cursor is where the cursor should be placed.
	Cursor layout.Pos
}

// Writer renders frames to a terminal.
type Writer struct {
	file io.Writer
	// Row of the cursor, relative to the first row of the last written frame.
	cursorRow int
}

// NewWriter returns a Writer that writes VT100 sequences to the given
// io.Writer.
func NewWriter(f io.Writer) *Writer {
	return &Writer{file: f}
}

const (
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	clearScreen = "\033[H\033[2J"
	bell        = "\a"
)

// Refresh redraws the prompt and the line described by the frame.
func (w *Writer) Refresh(f Frame) error {
	// Store all the output in a buffer, so that we only write to the terminal
	// once.
	output := new(bytes.Buffer)

	// Hide cursor at the beginning to minimize flickering.
	output.WriteString(hideCursor)

	// Rewind cursor.
	if !f.Fresh && w.cursorRow > 0 {
		fmt.Fprintf(output, "\033[%dA", w.cursorRow)
	}
	output.WriteString("\r\033[J")

	output.WriteString(f.Prompt)
	if f.PromptNewline {
		output.WriteString("\n")
	}
	if f.NoColor {
		output.WriteString(f.Display.String())
	} else {
		output.WriteString(f.Display.VTString())
	}
	if f.WrapNewline {
		output.WriteString("\n")
	}

	if up := f.End.Row - f.Cursor.Row; up > 0 {
		fmt.Fprintf(output, "\033[%dA", up)
	}
	fmt.Fprintf(output, "\033[%dG", f.Cursor.Col+1)

	output.WriteString(showCursor)

	if _, err := w.file.Write(output.Bytes()); err != nil {
		return err
	}
	w.cursorRow = f.Cursor.Row
	return nil
}

// WriteString writes s as is.
func (w *Writer) WriteString(s string) error {
	_, err := io.WriteString(w.file, s)
	return err
}

// Beep rings the terminal bell.
func (w *Writer) Beep() error {
	return w.WriteString(bell)
}

// ClearScreen clears the terminal screen and places the cursor at the top
// left corner.
func (w *Writer) ClearScreen() error {
	w.cursorRow = 0
	return w.WriteString(clearScreen)
}
