package cli

import (
	"github.com/jarvisfriends/replxx/pkg/cli/complete"
	"github.com/jarvisfriends/replxx/pkg/cli/killring"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Erases the "more" prompt of the pager.
const clearMorePrompt = "\r        \r"

// Completes the word before the cursor. When there is no completer, or the
// line is empty and completing on an empty line is off, the key is inserted
// as is.
func completeLine(ed *Editor, k ui.Key) State {
	if ed.completer == nil || !(ed.cfg.CompleteOnEmpty || ed.buf.Cursor() > 0) {
		return insertChar(ed, k)
	}
	ed.kill.SetLastAction(killring.Other)
	ed.hist.ResetRecallMostRecent()
	if err := ed.complete(); err != nil {
		return ed.fail(err)
	}
	return Editing
}

// complete extends the word before the cursor when the candidates agree on
// more than it, and lists the candidates otherwise. Only errors from reading
// the terminal are returned.
func (ed *Editor) complete() error {
	cursor := ed.buf.Cursor()
	cands, contextLen := callCompleter(ed.completer, string(ed.buf.Slice(0, cursor)), ed.buf.ContextLength())
	plan := complete.Decide(cands, contextLen, ed.hintSelection)
	if plan.Kind == complete.None {
		ed.beep()
		return nil
	}
	if plan.Ambiguous && ed.cfg.BeepOnAmbiguousCompletion {
		ed.beep()
	}
	if plan.Kind == complete.Extend {
		start := cursor - contextLen
		ed.buf.Erase(start, contextLen)
		ed.buf.SetCursor(start)
		ed.buf.Insert(plan.Insert...)
		ed.buf.SetMark(ed.buf.Cursor())
		ed.refresh(hintRegenerate)
		return nil
	}
	if ed.cfg.DoubleTabCompletion {
		k, err := ed.readKey()
		if err != nil {
			return err
		}
		if k != ui.K(ui.Tab) {
			ed.pushBack(k)
			return nil
		}
	}
	return ed.listCandidates(cands, contextLen, plan.CommonPrefix)
}

// listCandidates prints the candidates below the line in columns, asking
// first when there are many of them and pausing after every screenful.
func (ed *Editor) listCandidates(cands []string, contextLen, prefixLen int) error {
	savedOnResize := ed.onResize
	ed.onResize = nil
	defer func() { ed.onResize = savedOnResize }()

	show := true
	onNewLine := false
	interrupted := false
	if len(cands) > ed.cfg.CompletionCountCutoff {
		ed.refreshAtEnd(hintRegenerate)
		ed.print("\n" + complete.ConfirmPrompt(len(cands)))
		onNewLine = true
		answer := complete.NoAnswer
		for answer == complete.NoAnswer {
			k, err := ed.readKey()
			if err != nil {
				return err
			}
			answer = complete.ConfirmAnswer(k)
		}
		switch answer {
		case complete.No:
			show = false
		case complete.Interrupt:
			ed.print("^C")
			show = false
		default:
			ed.print("\033[J")
		}
	}

	stopped := false
	if show {
		if !onNewLine {
			ed.refreshAtEnd(hintSkip)
		}
		cursor := ed.buf.Cursor()
		context := ed.buf.Slice(cursor-contextLen, cursor)
		grid := complete.Layout(cands, ed.width, ed.runeWidth)
		pager := complete.NewPager(ed.height)
		for row := 0; row < grid.Rows && !stopped; row++ {
			if pager.PauseAt(row) {
				ed.print("\n" + complete.MorePrompt)
				action := complete.Invalid
				for action == complete.Invalid {
					k, err := ed.readKey()
					if err != nil {
						return err
					}
					if action = pager.Respond(k); action == complete.Invalid {
						ed.beep()
					}
				}
				if action == complete.Interrupted {
					ed.print("^C")
					stopped, interrupted = true, true
					break
				}
				ed.print(clearMorePrompt)
				if action == complete.Stop {
					stopped = true
					break
				}
			} else {
				ed.print("\n")
			}
			ed.print(complete.FormatRow(cands, grid, row, context, prefixLen, ed.cfg.NoColor))
		}
	}
	if !stopped || interrupted {
		ed.print("\n")
	}
	ed.fresh = true
	ed.refresh(hintRegenerate)
	return nil
}
