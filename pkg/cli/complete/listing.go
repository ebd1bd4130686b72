package complete

import (
	"fmt"
	"strings"

	"github.com/jarvisfriends/replxx/pkg/ui"
)

// PrefixColor is the color of the common prefix in listings.
const PrefixColor = ui.BrightMagenta

// FormatRow formats a row of the listing. The first prefixLen codepoints of
// every candidate are replaced by the same number of codepoints of context,
// which is what the user typed, and colored with PrefixColor unless noColor
// is set.
func FormatRow(cands []string, g Grid, row int, context []rune, prefixLen int, noColor bool) string {
	if prefixLen > len(context) {
		prefixLen = len(context)
	}
	prefix := string(context[:prefixLen])
	var sb strings.Builder
	for _, i := range g.Row(row) {
		cand := []rune(cands[i])
		if prefixLen > 0 {
			if noColor {
				sb.WriteString(prefix)
			} else {
				fmt.Fprintf(&sb, "\033[0;%sm%s\033[0m", PrefixColor.SGR(), prefix)
			}
		}
		if prefixLen < len(cand) {
			sb.WriteString(string(cand[prefixLen:]))
		}
		if !g.IsLastInRow(i) {
			sb.WriteString(strings.Repeat(" ", max(g.ColumnWidth-g.Widths[i], 0)))
		}
	}
	return sb.String()
}

// ConfirmPrompt returns the question asked before listing n candidates.
func ConfirmPrompt(n int) string {
	return fmt.Sprintf("Display all %d possibilities? (y or n)", n)
}

// Answer is the answer to a yes or no question.
type Answer int

// Values for Answer.
const (
	// The key does not answer the question.
	NoAnswer Answer = iota
	Yes
	No
	// Ctrl-C was pressed.
	Interrupt
)

// ConfirmAnswer interprets a key pressed at the confirmation prompt.
func ConfirmAnswer(k ui.Key) Answer {
	switch k {
	case ui.K('y'), ui.K('Y'):
		return Yes
	case ui.K('n'), ui.K('N'):
		return No
	case ui.K('C', ui.Ctrl):
		return Interrupt
	}
	return NoAnswer
}

// MorePrompt is shown when the listing pauses.
const MorePrompt = "--More--"

// Pager decides where a listing pauses.
type Pager struct {
	screenRows int
	pauseRow   int
}

// NewPager creates a Pager for a screen with the given number of rows. The
// listing first pauses before the row that would scroll the line off the
// screen.
func NewPager(screenRows int) *Pager {
	if screenRows < 2 {
		screenRows = 2
	}
	return &Pager{screenRows, screenRows - 1}
}

// PauseAt reports whether the listing should pause before row.
func (p *Pager) PauseAt(row int) bool { return row == p.pauseRow }

// PagerAction is what the listing does after a pause.
type PagerAction int

// Values for PagerAction.
const (
	// The key is not understood; beep and keep waiting.
	Invalid PagerAction = iota
	// Show another screenful.
	NextPage
	// Show one more row.
	NextLine
	// Stop listing.
	Stop
	// Stop listing because Ctrl-C was pressed.
	Interrupted
)

// Respond handles a key pressed at the --More-- prompt.
func (p *Pager) Respond(k ui.Key) PagerAction {
	switch k {
	case ui.K(' '), ui.K('y'), ui.K('Y'):
		p.pauseRow += p.screenRows - 1
		return NextPage
	case ui.K(ui.Enter), ui.K('M', ui.Ctrl):
		p.pauseRow++
		return NextLine
	case ui.K('n'), ui.K('N'), ui.K('q'), ui.K('Q'):
		return Stop
	case ui.K('C', ui.Ctrl):
		return Interrupted
	}
	return Invalid
}
