package cli

import (
	"slices"

	"github.com/jarvisfriends/replxx/pkg/cli/histutil"
	"github.com/jarvisfriends/replxx/pkg/cli/killring"
	"github.com/jarvisfriends/replxx/pkg/cli/layout"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Actions that leave incremental search keeping the found line, and are then
// carried out on it.
var searchExitActions = []string{
	"move-line-start", "move-line-end",
	"move-char-left", "move-char-right",
	"move-word-left", "move-word-right",
	"kill-word-left", "kill-word-right", "kill-space-word-left",
	"kill-line-left", "kill-line-right",
	"history-next", "history-previous", "history-first", "history-last",
	"transpose-chars", "yank-pop", "delete-char", "send-eof",
	"commit-line",
}

// Leaves incremental search and restores the line.
var searchCancelKey = ui.K('G', ui.Ctrl)

func historySearch(dir int) action {
	return func(ed *Editor, _ ui.Key) State {
		ed.kill.SetLastAction(killring.Other)
		return ed.incrementalSearch(dir)
	}
}

type searchState struct {
	query []rune
	dir   int
	match histutil.Match
}

func (s *searchState) prompt() string {
	if s.dir < 0 {
		return "(reverse-i-search)`" + string(s.query) + "': "
	}
	return "(i-search)`" + string(s.query) + "': "
}

// incrementalSearch runs an incremental search through history, starting in
// direction dir. The search prompt replaces the usual one until a key that
// is not part of the search is pressed; that key is then handled as usual.
func (ed *Editor) incrementalSearch(dir int) State {
	if ed.hist.IsLast() {
		ed.hist.UpdateLast(ed.buf.String())
	}
	startIndex := ed.hist.Index()
	s := &searchState{
		dir:   dir,
		match: histutil.Match{Index: startIndex, Pos: ed.buf.Cursor()},
	}

	savedOnResize := ed.onResize
	ed.onResize = func() { ed.renderSearch(s) }
	defer func() { ed.onResize = savedOnResize }()

	ed.renderSearch(s)
	var (
		exitKey   ui.Key
		keepMatch bool
		redeliver bool
	)
loop:
	for {
		k, err := ed.readKey()
		if err != nil {
			return ed.fail(err)
		}
		name := ed.bindings[k]
		searchAgain := false
		switch {
		case k == searchCancelKey || name == "abort-line":
			break loop
		case name == "clear-screen":
			exitKey, redeliver = k, true
			break loop
		case slices.Contains(searchExitActions, name):
			exitKey, redeliver, keepMatch = k, true, true
			break loop
		case name == "history-search-backward" || name == "history-search-forward":
			newDir := -1
			if name == "history-search-forward" {
				newDir = 1
			}
			if len(s.query) == 0 {
				s.query = slices.Clone(ed.lastQuery)
			} else if newDir == s.dir {
				searchAgain = true
			}
			s.dir = newDir
		case name == "suspend":
			suspend(ed, k)
		case name == "backspace-char":
			if len(s.query) == 0 {
				ed.beep()
				break
			}
			s.query = s.query[:len(s.query)-1]
			ed.restartSearch(s)
		case name == "yank":
		case k.Mod == 0 && !k.IsFunctionKey() && !isControl(k.Rune):
			s.query = append(s.query, k.Rune)
		default:
			ed.beep()
		}

		if len(s.query) > 0 {
			from := s.match
			if searchAgain {
				from.Pos += s.dir
			}
			if m, ok := ed.hist.FindSubstring(s.query, s.dir, from); ok {
				ed.hist.ResetPos(m.Index)
				s.match = m
			} else {
				ed.beep()
			}
		}
		ed.renderSearch(s)
	}

	if line := ed.hist.Current(); keepMatch && line != "" {
		ed.hist.SetRecallMostRecent()
		ed.buf.SetString(line)
		ed.buf.SetCursor(s.match.Pos)
		ed.buf.SetMark(ed.buf.Cursor())
	} else if !keepMatch {
		ed.hist.ResetPos(startIndex)
	}
	ed.lastQuery = s.query
	ed.refresh(hintRegenerate)
	if redeliver {
		ed.pushBack(exitKey)
	}
	return Editing
}

// restartSearch starts the search over from the newest entry when searching
// backward, and from the oldest one otherwise.
func (ed *Editor) restartSearch(s *searchState) {
	if s.dir < 0 {
		ed.hist.ResetPos(ed.hist.Size() - 1)
		s.match = histutil.Match{Index: ed.hist.Index(), Pos: len([]rune(ed.hist.Current()))}
	} else {
		ed.hist.ResetPos(0)
		s.match = histutil.Match{Index: ed.hist.Index()}
	}
}

// renderSearch shows the search prompt followed by the entry being looked at.
func (ed *Editor) renderSearch(s *searchState) {
	prompt := s.prompt()
	line := []rune(ed.hist.Current())
	promptEnd, promptNewline := promptLayout(prompt, ed.width, ed.runeWidth)
	pos := min(max(s.match.Pos, 0), len(line))
	end := layout.Advance(promptEnd, ed.width, ed.columns(line))
	wrapNewline := end.Col == 0 && end.Row > promptEnd.Row
	ed.render(term.Frame{
		Prompt:        prompt,
		PromptNewline: promptNewline,
		Display:       ui.T(string(line), ui.Default),
		End:           end,
		WrapNewline:   wrapNewline,
		Cursor:        layout.Advance(promptEnd, ed.width, ed.columns(line[:pos])),
	})
}
