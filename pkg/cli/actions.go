package cli

import (
	"io"

	"github.com/jarvisfriends/replxx/pkg/cli/killring"
	"github.com/jarvisfriends/replxx/pkg/cli/linebuf"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// An action handles a key and returns the resulting state.
type action func(ed *Editor, k ui.Key) State

// Actions by name. Names are used in the bindings of the configuration.
var actions = map[string]action{
	"move-line-start":         moveLineStart,
	"move-line-end":           moveLineEnd,
	"move-char-left":          moveCharLeft,
	"move-char-right":         moveCharRight,
	"move-word-left":          moveWordLeft,
	"move-word-right":         moveWordRight,
	"kill-word-left":          killWordLeft,
	"kill-word-right":         killWordRight,
	"kill-space-word-left":    killSpaceWordLeft,
	"kill-line-left":          killLineLeft,
	"kill-line-right":         killLineRight,
	"yank":                    yank,
	"yank-pop":                yankPop,
	"capitalize-word":         changeCase(linebuf.Capitalize),
	"lowercase-word":          changeCase(linebuf.Lowercase),
	"uppercase-word":          changeCase(linebuf.Uppercase),
	"transpose-chars":         transposeChars,
	"abort-line":              abortLine,
	"send-eof":                sendEOF,
	"delete-char":             deleteChar,
	"backspace-char":          backspaceChar,
	"commit-line":             commitLine,
	"clear-screen":            clearScreen,
	"history-next":            historyMove(false),
	"history-previous":        historyMove(true),
	"history-first":           historyJump(true),
	"history-last":            historyJump(false),
	"hint-next":               hintMove(1),
	"hint-previous":           hintMove(-1),
	"suspend":                 suspend,
	"complete-line":           completeLine,
	"history-search-backward": historySearch(-1),
	"history-search-forward":  historySearch(1),
	"prefix-search-backward":  prefixSearch(true),
	"prefix-search-forward":   prefixSearch(false),
	"insert-char":             insertChar,
}

func ctrl(r rune) ui.Key { return ui.K(r, ui.Ctrl) }

func alt(r rune) ui.Key { return ui.K(r, ui.Alt) }

func altCtrl(r rune) ui.Key { return ui.K(r, ui.Alt, ui.Ctrl) }

var defaultBindings = map[ui.Key]string{
	ctrl('A'):          "move-line-start",
	ui.K(ui.Home):      "move-line-start",
	ctrl('E'):          "move-line-end",
	ui.K(ui.End):       "move-line-end",
	ctrl('B'):          "move-char-left",
	ui.K(ui.Left):      "move-char-left",
	ctrl('F'):          "move-char-right",
	ui.K(ui.Right):     "move-char-right",
	alt('b'):           "move-word-left",
	alt('B'):           "move-word-left",
	ctrl(ui.Left):      "move-word-left",
	alt(ui.Left):       "move-word-left",
	alt('f'):           "move-word-right",
	alt('F'):           "move-word-right",
	ctrl(ui.Right):     "move-word-right",
	alt(ui.Right):      "move-word-right",
	alt(ui.Backspace):  "kill-word-left",
	altCtrl('H'):       "kill-word-left",
	alt('d'):           "kill-word-right",
	alt('D'):           "kill-word-right",
	ctrl('W'):          "kill-space-word-left",
	ctrl('U'):          "kill-line-left",
	ctrl('K'):          "kill-line-right",
	ctrl('Y'):          "yank",
	alt('y'):           "yank-pop",
	alt('Y'):           "yank-pop",
	alt('c'):           "capitalize-word",
	alt('C'):           "capitalize-word",
	alt('l'):           "lowercase-word",
	alt('L'):           "lowercase-word",
	alt('u'):           "uppercase-word",
	alt('U'):           "uppercase-word",
	ctrl('T'):          "transpose-chars",
	ctrl('C'):          "abort-line",
	ctrl('D'):          "send-eof",
	ui.K(ui.Delete):    "delete-char",
	ui.K(ui.Backspace): "backspace-char",
	ctrl('H'):          "backspace-char",
	ui.K(ui.Enter):     "commit-line",
	ctrl('J'):          "commit-line",
	ctrl('M'):          "commit-line",
	ctrl('L'):          "clear-screen",
	ctrl('N'):          "history-next",
	ui.K(ui.Down):      "history-next",
	ctrl('P'):          "history-previous",
	ui.K(ui.Up):        "history-previous",
	alt('>'):           "history-last",
	ui.K(ui.PageDown):  "history-last",
	alt('<'):           "history-first",
	ui.K(ui.PageUp):    "history-first",
	ctrl(ui.Up):        "hint-previous",
	ctrl(ui.Down):      "hint-next",
	ctrl('Z'):          "suspend",
	ui.K(ui.Tab):       "complete-line",
	ctrl('R'):          "history-search-backward",
	ctrl('S'):          "history-search-forward",
	alt('p'):           "prefix-search-backward",
	alt('P'):           "prefix-search-backward",
	alt('n'):           "prefix-search-forward",
	alt('N'):           "prefix-search-forward",
}

// Inserts the key itself. Keys with modifiers, function keys and control
// characters are refused with a beep.
func insertChar(ed *Editor, k ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	if k.Mod != 0 || k.IsFunctionKey() || isControl(k.Rune) {
		ed.beep()
		return Editing
	}
	ed.buf.Insert(k.Rune)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

// Motions.

func (ed *Editor) moveTo(i int) State {
	ed.kill.SetLastAction(killring.Other)
	ed.buf.SetCursor(i)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

func moveLineStart(ed *Editor, _ ui.Key) State { return ed.moveTo(0) }

func moveLineEnd(ed *Editor, _ ui.Key) State { return ed.moveTo(ed.buf.Len()) }

func moveCharLeft(ed *Editor, _ ui.Key) State { return ed.moveTo(ed.buf.Cursor() - 1) }

func moveCharRight(ed *Editor, _ ui.Key) State { return ed.moveTo(ed.buf.Cursor() + 1) }

func moveWordLeft(ed *Editor, _ ui.Key) State {
	return ed.moveTo(ed.buf.WordStartBefore(ed.buf.Cursor()))
}

func moveWordRight(ed *Editor, _ ui.Key) State {
	return ed.moveTo(ed.buf.WordEndAfter(ed.buf.Cursor()))
}

// Kills. They count as kills for grouping even when there is nothing to kill.

// killLeftTo kills the text between i and the cursor.
func (ed *Editor) killLeftTo(i int) State {
	ed.hist.ResetRecallMostRecent()
	cursor := ed.buf.Cursor()
	if i >= cursor {
		ed.kill.SetLastAction(killring.Kill)
		return Editing
	}
	ed.kill.Kill(ed.buf.Erase(i, cursor-i), false)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

// killRightTo kills the text between the cursor and i.
func (ed *Editor) killRightTo(i int) State {
	ed.hist.ResetRecallMostRecent()
	cursor := ed.buf.Cursor()
	if i <= cursor {
		ed.kill.SetLastAction(killring.Kill)
		return Editing
	}
	ed.kill.Kill(ed.buf.Erase(cursor, i-cursor), true)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

func killWordLeft(ed *Editor, _ ui.Key) State {
	return ed.killLeftTo(ed.buf.WordStartBefore(ed.buf.Cursor()))
}

func killWordRight(ed *Editor, _ ui.Key) State {
	return ed.killRightTo(ed.buf.WordEndAfter(ed.buf.Cursor()))
}

func killSpaceWordLeft(ed *Editor, _ ui.Key) State {
	return ed.killLeftTo(ed.buf.SpaceWordStartBefore(ed.buf.Cursor()))
}

func killLineLeft(ed *Editor, _ ui.Key) State { return ed.killLeftTo(0) }

func killLineRight(ed *Editor, _ ui.Key) State { return ed.killRightTo(ed.buf.Len()) }

func yank(ed *Editor, _ ui.Key) State {
	ed.hist.ResetRecallMostRecent()
	text, ok := ed.kill.Yank()
	if !ok {
		ed.beep()
		return Editing
	}
	ed.buf.Insert(text...)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

// Replaces the text just yanked with the next older kill.
func yankPop(ed *Editor, _ ui.Key) State {
	ed.hist.ResetRecallMostRecent()
	text, replaced, ok := ed.kill.YankPop()
	if !ok {
		ed.beep()
		return Editing
	}
	cursor := ed.buf.Cursor()
	ed.buf.Erase(cursor-replaced, replaced)
	ed.buf.Insert(text...)
	ed.buf.SetMark(ed.buf.Cursor())
	ed.refresh(hintRegenerate)
	return Editing
}

// Other edits.

func changeCase(op linebuf.CaseOp) action {
	return func(ed *Editor, _ ui.Key) State {
		ed.kill.SetLastAction(killring.Other)
		ed.hist.ResetRecallMostRecent()
		if ed.buf.ChangeWordCase(op) {
			ed.buf.SetMark(ed.buf.Cursor())
			ed.refresh(hintRegenerate)
		}
		return Editing
	}
}

func transposeChars(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	if ed.buf.Transpose() {
		ed.buf.SetMark(ed.buf.Cursor())
		ed.refresh(hintRegenerate)
	}
	return Editing
}

func deleteChar(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	cursor := ed.buf.Cursor()
	if cursor < ed.buf.Len() {
		ed.buf.Erase(cursor, 1)
		ed.buf.SetMark(cursor)
		ed.refresh(hintRegenerate)
	}
	return Editing
}

func backspaceChar(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	cursor := ed.buf.Cursor()
	if cursor > 0 {
		ed.buf.Erase(cursor-1, 1)
		ed.buf.SetMark(ed.buf.Cursor())
		ed.refresh(hintRegenerate)
	}
	return Editing
}

// Session control.

func abortLine(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	ed.buf.SetCursor(ed.buf.Len())
	ed.buf.SetMark(ed.buf.Len())
	ed.refresh(hintSkip)
	ed.print("^C\r\n")
	return ed.fail(ErrInterrupted)
}

// Ends the input on an empty line, and deletes the character under the
// cursor otherwise.
func sendEOF(ed *Editor, k ui.Key) State {
	if ed.buf.Len() > 0 {
		return deleteChar(ed, k)
	}
	ed.print("\n")
	return ed.fail(io.EOF)
}

func commitLine(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	ed.buf.SetCursor(ed.buf.Len())
	ed.refresh(hintSkip)
	return Committed
}

func clearScreen(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	if err := ed.tty.ClearScreen(); err != nil {
		logger.Println("clear screen:", err)
	}
	ed.fresh = true
	ed.refresh(hintRegenerate)
	return Editing
}

func suspend(ed *Editor, _ ui.Key) State {
	ed.kill.SetLastAction(killring.Other)
	s, ok := ed.tty.(Suspender)
	if !ok {
		ed.beep()
		return Editing
	}
	if err := s.Suspend(); err != nil {
		logger.Println("suspend:", err)
	}
	ed.width, ed.height = ed.tty.Size()
	ed.fresh = true
	ed.refresh(hintRegenerate)
	return Editing
}

// History navigation.

func historyMove(up bool) action {
	return func(ed *Editor, _ ui.Key) State {
		ed.kill.SetLastAction(killring.Other)
		if ed.hist.IsLast() {
			ed.hist.UpdateLast(ed.buf.String())
		}
		if err := ed.hist.Move(up); err != nil {
			return Editing
		}
		ed.buf.SetString(ed.hist.Current())
		ed.refresh(hintRegenerate)
		return Editing
	}
}

func historyJump(start bool) action {
	return func(ed *Editor, _ ui.Key) State {
		ed.kill.SetLastAction(killring.Other)
		if ed.hist.Size() == 0 {
			return Editing
		}
		if ed.hist.IsLast() {
			ed.hist.UpdateLast(ed.buf.String())
		}
		ed.hist.Jump(start)
		ed.buf.SetString(ed.hist.Current())
		ed.refresh(hintRegenerate)
		return Editing
	}
}

// Recalls the nearest entry that starts with the text before the mark. The
// mark stays, so that repeating the search uses the same prefix.
func prefixSearch(back bool) action {
	return func(ed *Editor, _ ui.Key) State {
		ed.kill.SetLastAction(killring.Other)
		if ed.hist.IsLast() {
			ed.hist.UpdateLast(ed.buf.String())
		}
		mark := ed.buf.Mark()
		if !ed.hist.PrefixSearch(ed.buf.Slice(0, mark), back) {
			ed.beep()
			return Editing
		}
		ed.buf.SetString(ed.hist.Current())
		ed.buf.SetMark(mark)
		ed.refresh(hintRegenerate)
		return Editing
	}
}

// Hints.

func hintMove(delta int) action {
	return func(ed *Editor, _ ui.Key) State {
		if ed.cfg.NoColor {
			return Editing
		}
		ed.kill.SetLastAction(killring.Other)
		ed.hintSelection += delta
		ed.refresh(hintRepaint)
		return Editing
	}
}
