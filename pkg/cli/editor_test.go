package cli_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jarvisfriends/replxx/pkg/cli"
	"github.com/jarvisfriends/replxx/pkg/cli/clitest"
	"github.com/jarvisfriends/replxx/pkg/cli/histutil"
	"github.com/jarvisfriends/replxx/pkg/cli/layout"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Keys used by the tests.
var (
	enter     = ui.K(ui.Enter)
	tab       = ui.K(ui.Tab)
	up        = ui.K(ui.Up)
	down      = ui.K(ui.Down)
	left      = ui.K(ui.Left)
	home      = ui.K(ui.Home)
	backspace = ui.K(ui.Backspace)
	del       = ui.K(ui.Delete)
)

func ctrl(r rune) ui.Key { return ui.K(r, ui.Ctrl) }

func alt(r rune) ui.Key { return ui.K(r, ui.Alt) }

// keys builds a key sequence from strings, whose runes become plain keys, and
// ui.Key values.
func keys(parts ...any) []ui.Key {
	var ks []ui.Key
	for _, part := range parts {
		switch part := part.(type) {
		case string:
			for _, r := range part {
				ks = append(ks, ui.K(r))
			}
		case ui.Key:
			ks = append(ks, part)
		default:
			panic("bad key part")
		}
	}
	return ks
}

func setup(specs ...func(*cli.EditorSpec)) (*cli.Editor, clitest.TTYCtrl) {
	tty, ttyCtrl := clitest.NewFakeTTY()
	spec := cli.EditorSpec{TTY: tty}
	for _, f := range specs {
		f(&spec)
	}
	return cli.NewEditor(spec), ttyCtrl
}

func withConfig(f func(*cli.Config)) func(*cli.EditorSpec) {
	return func(spec *cli.EditorSpec) {
		cfg := cli.DefaultConfig()
		f(&cfg)
		spec.Config = &cfg
	}
}

func withHistory(lines ...string) func(*cli.EditorSpec) {
	return func(spec *cli.EditorSpec) {
		h := histutil.New(-1)
		for _, line := range lines {
			h.Add(line)
		}
		spec.History = h
	}
}

func readLine(t *testing.T, ed *cli.Editor, ttyCtrl clitest.TTYCtrl, ks ...ui.Key) string {
	t.Helper()
	ttyCtrl.InjectKeys(ks...)
	line, err := ed.ReadLine("> ")
	if err != nil {
		t.Fatalf("ReadLine -> error %v", err)
	}
	return line
}

func TestReadLine_Commit(t *testing.T) {
	ed, ttyCtrl := setup()
	line := readLine(t, ed, ttyCtrl, keys("hello", enter)...)
	if line != "hello" {
		t.Errorf("got line %q, want %q", line, "hello")
	}
	if got := ed.History().Entries(); !cmp.Equal(got, []string{"hello"}) {
		t.Errorf("history %q, want [hello]", got)
	}
	if printed := ttyCtrl.Printed(); printed != "\n" {
		t.Errorf("printed %q, want a newline", printed)
	}
	first := ttyCtrl.Frames()[0]
	if !first.Fresh || first.Prompt != "> " {
		t.Errorf("first frame %+v, want a fresh frame with the prompt", first)
	}
}

func TestReadLine_EmptyLineNotAddedToHistory(t *testing.T) {
	ed, ttyCtrl := setup()
	if line := readLine(t, ed, ttyCtrl, enter); line != "" {
		t.Errorf("got line %q, want empty", line)
	}
	if n := ed.History().Size(); n != 0 {
		t.Errorf("history has %d entries, want 0", n)
	}
}

func TestReadLine_EndOfInput(t *testing.T) {
	ed, ttyCtrl := setup()
	ttyCtrl.InjectString("abc")
	line, err := ed.ReadLine("> ")
	if line != "" || err != io.EOF {
		t.Errorf("got (%q, %v), want (\"\", io.EOF)", line, err)
	}
	if n := ed.History().Size(); n != 0 {
		t.Errorf("provisional history entry not dropped")
	}
}

func TestReadLine_TerminalError(t *testing.T) {
	ed, ttyCtrl := setup()
	errRead := errors.New("read error")
	ttyCtrl.SetEOFError(errRead)
	if _, err := ed.ReadLine("> "); err != errRead {
		t.Errorf("got error %v, want %v", err, errRead)
	}
}

func TestReadLine_CtrlDOnEmptyLine(t *testing.T) {
	ed, ttyCtrl := setup()
	ttyCtrl.InjectKeys(ctrl('D'))
	line, err := ed.ReadLine("> ")
	if line != "" || err != io.EOF {
		t.Errorf("got (%q, %v), want (\"\", io.EOF)", line, err)
	}
	if printed := ttyCtrl.Printed(); printed != "\n" {
		t.Errorf("printed %q, want a newline", printed)
	}
}

func TestReadLine_CtrlC(t *testing.T) {
	ed, ttyCtrl := setup(withHistory("old"))
	ttyCtrl.InjectKeys(keys("abc", ctrl('C'))...)
	line, err := ed.ReadLine("> ")
	if line != "" || err != cli.ErrInterrupted {
		t.Errorf("got (%q, %v), want (\"\", ErrInterrupted)", line, err)
	}
	if printed := ttyCtrl.Printed(); printed != "^C\r\n" {
		t.Errorf("printed %q, want %q", printed, "^C\r\n")
	}
	if got := ed.History().Entries(); !cmp.Equal(got, []string{"old"}) {
		t.Errorf("history %q, want [old]", got)
	}
	// The editor can be used again.
	if line := readLine(t, ed, ttyCtrl, keys("x", enter)...); line != "x" {
		t.Errorf("got line %q after interrupt, want %q", line, "x")
	}
}

var editTests = []struct {
	name  string
	keys  []ui.Key
	want  string
	beeps int
}{
	{"insert at start", keys("a b c", ctrl('A'), "x", enter), "xa b c", 0},
	{"insert at end", keys("ab", home, ctrl('E'), "c", enter), "abc", 0},
	{"char motions", keys("ac", ctrl('B'), "b", ctrl('F'), "d", enter), "abcd", 0},
	{"word motions", keys("foo bar", alt('b'), alt('b'), "x", alt('f'), "y", enter), "xfooy bar", 0},
	{"word motions with ctrl", keys("foo bar", ui.K(ui.Left, ui.Ctrl), "x", ui.K(ui.Right, ui.Ctrl), "y", enter), "foo xbary", 0},
	{"unicode", keys("你好", left, "们", enter), "你们好", 0},

	{"backspace", keys("abc", backspace, enter), "ab", 0},
	{"ctrl-h", keys("abc", ctrl('H'), enter), "ab", 0},
	{"backspace at start", keys("abc", home, backspace, enter), "abc", 0},
	{"delete", keys("abc", home, del, enter), "bc", 0},
	{"delete at end", keys("abc", del, enter), "abc", 0},
	{"ctrl-d deletes", keys("abc", left, ctrl('D'), enter), "ab", 0},

	{"kill word left", keys("foo bar", alt(ui.Backspace), enter), "foo ", 0},
	{"kill space word left", keys("a=b c=d", ctrl('W'), enter), "a=b ", 0},
	{"kill word right", keys("foo bar", home, alt('d'), enter), " bar", 0},
	{"kill line right", keys("foo bar", left, left, ctrl('K'), enter), "foo b", 0},
	{"kill line left", keys("foo bar", left, ctrl('U'), enter), "r", 0},

	{"yank", keys("foo", ctrl('U'), "x", ctrl('Y'), enter), "xfoo", 0},
	{"consecutive kills are yanked together",
		keys("foo bar", home, alt('d'), alt('d'), ctrl('Y'), enter), "foo bar", 0},
	{"backward kills are prepended",
		keys("foo bar", alt(ui.Backspace), alt(ui.Backspace), ctrl('Y'), enter), "foo bar", 0},
	{"yank-pop replaces the yank",
		keys("one two", alt(ui.Backspace), left, alt(ui.Backspace), ctrl('Y'), alt('y'), enter), "two ", 0},
	{"yank-pop wraps around",
		keys("one two", alt(ui.Backspace), left, alt(ui.Backspace), ctrl('Y'), alt('y'), alt('y'), enter), "one ", 0},
	{"yank with an empty ring", keys("ab", ctrl('Y'), enter), "ab", 1},
	{"yank-pop without yank", keys("ab", ctrl('U'), "cd", alt('y'), enter), "cd", 1},

	{"capitalize", keys("hello world", home, alt('c'), alt('c'), enter), "Hello World", 0},
	{"uppercase", keys("hello world", home, alt('u'), enter), "HELLO world", 0},
	{"lowercase", keys("HELLO", home, alt('l'), enter), "hello", 0},
	{"transpose at end", keys("ab", ctrl('T'), enter), "ba", 0},
	{"transpose in middle", keys("abc", home, ctrl('F'), ctrl('T'), enter), "bac", 0},

	{"unbound ctrl key", keys("a", ctrl('X'), enter), "a", 1},
	{"function key", keys("a", ui.K(ui.F1), enter), "a", 1},
	{"alt key", keys("a", alt('z'), enter), "a", 1},
	{"tab without completer", keys("a", tab, enter), "a", 1},
}

func TestReadLine_Editing(t *testing.T) {
	for _, test := range editTests {
		t.Run(test.name, func(t *testing.T) {
			ed, ttyCtrl := setup()
			if line := readLine(t, ed, ttyCtrl, test.keys...); line != test.want {
				t.Errorf("got line %q, want %q", line, test.want)
			}
			if beeps := ttyCtrl.Beeps(); beeps != test.beeps {
				t.Errorf("got %d beeps, want %d", beeps, test.beeps)
			}
		})
	}
}

func TestReadLine_CommitMovesCursorToEnd(t *testing.T) {
	ed, ttyCtrl := setup()
	readLine(t, ed, ttyCtrl, keys("abc", home, enter)...)
	if got, want := ttyCtrl.LastFrame().Cursor, (layout.Pos{Col: 5}); got != want {
		t.Errorf("final cursor %v, want %v", got, want)
	}
}

func TestReadLine_CustomBindings(t *testing.T) {
	ed, ttyCtrl := setup(withConfig(func(cfg *cli.Config) {
		cfg.Bindings = map[string]string{
			"Ctrl-X": "kill-line-left",
			"Ctrl-A": "none",
		}
	}))
	line := readLine(t, ed, ttyCtrl, keys("abc", ctrl('X'), "d", ctrl('A'), enter)...)
	if line != "d" {
		t.Errorf("got line %q, want %q", line, "d")
	}
	if beeps := ttyCtrl.Beeps(); beeps != 1 {
		t.Errorf("got %d beeps, want 1 from the unbound key", beeps)
	}
	if got := ed.Bindings()[ctrl('X')]; got != "kill-line-left" {
		t.Errorf("Ctrl-X bound to %q", got)
	}
}

func TestReadLine_ClearScreen(t *testing.T) {
	ed, ttyCtrl := setup()
	readLine(t, ed, ttyCtrl, keys("a", ctrl('L'), enter)...)
	if ttyCtrl.Cleared() != 1 {
		t.Errorf("screen cleared %d times, want 1", ttyCtrl.Cleared())
	}
	frames := ttyCtrl.Frames()
	// Frames: initial, "a", after clearing, commit.
	if len(frames) != 4 || !frames[2].Fresh || frames[3].Fresh {
		t.Errorf("frames after clearing the screen are wrong: %+v", frames)
	}
}

func TestReadLine_Suspend(t *testing.T) {
	ed, ttyCtrl := setup()
	readLine(t, ed, ttyCtrl, keys("a", ctrl('Z'), enter)...)
	if ttyCtrl.Suspended() != 1 {
		t.Errorf("suspended %d times, want 1", ttyCtrl.Suspended())
	}
}

func TestReadLine_Preload(t *testing.T) {
	ed, ttyCtrl := setup()
	ed.SetPreloadBuffer("a\tb\r\n\tc")
	if line := readLine(t, ed, ttyCtrl, enter); line != "a b c" {
		t.Errorf("got line %q, want %q", line, "a b c")
	}
	if printed := ttyCtrl.Printed(); printed != "\n" {
		t.Errorf("printed %q, want no notice", printed)
	}
	// The preload is only used once.
	if line := readLine(t, ed, ttyCtrl, enter); line != "" {
		t.Errorf("got line %q, want empty", line)
	}
}

func TestReadLine_PreloadWithControlCharacters(t *testing.T) {
	ed, ttyCtrl := setup()
	ed.SetPreloadBuffer("a\x01b\n\x1bc")
	if line := readLine(t, ed, ttyCtrl, enter); line != "a b c" {
		t.Errorf("got line %q, want %q", line, "a b c")
	}
	notice := " [Edited line: control characters were converted to spaces]\n"
	if printed := ttyCtrl.Printed(); printed != notice+"\n" {
		t.Errorf("printed %q, want the notice first", printed)
	}
}

func TestReadLine_Resize(t *testing.T) {
	ed, ttyCtrl := setup()
	ttyCtrl.InjectKeys(keys("abcdefgh")...)
	ttyCtrl.Inject(term.ResizeEvent{Width: 5, Height: 10})
	ed.ReadLine("> ")

	f := ttyCtrl.LastFrame()
	if f.End != (layout.Pos{Row: 2}) || !f.WrapNewline {
		t.Errorf("frame after resize has End %v and WrapNewline %v, want {2 0} and true",
			f.End, f.WrapNewline)
	}
}

func TestReadLine_ZeroWidth(t *testing.T) {
	for _, prompt := range []string{"> ", "line\n> ", "\n> "} {
		t.Run(prompt, func(t *testing.T) {
			ed, ttyCtrl := setup(withHinter("abc", "abd"))
			ttyCtrl.InjectKeys(keys("ab")...)
			ttyCtrl.Inject(term.ResizeEvent{Width: 0, Height: 10})
			ttyCtrl.InjectKeys(enter)
			line, err := ed.ReadLine(prompt)
			if line != "ab" || err != nil {
				t.Fatalf("ReadLine -> (%q, %v), want (\"ab\", nil)", line, err)
			}
			// Nothing wraps.
			rows := strings.Count(prompt, "\n")
			if f := ttyCtrl.LastFrame(); f.End != (layout.Pos{Row: rows, Col: 4}) || f.WrapNewline || f.PromptNewline {
				t.Errorf("frame has End %v, WrapNewline %v and PromptNewline %v, want {%d 4}, false and false",
					f.End, f.WrapNewline, f.PromptNewline, rows)
			}
		})
	}
}

func TestReadLine_WidthFunc(t *testing.T) {
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) {
		spec.Width = func(rune) int { return 2 }
	})
	ttyCtrl.InjectKeys(keys("ab")...)
	ed.ReadLine("> ")
	// The prompt is measured like the line: 4 columns of prompt, 4 of line.
	if f := ttyCtrl.LastFrame(); f.End != (layout.Pos{Col: 8}) {
		t.Errorf("frame has End %v, want {0 8}", f.End)
	}
}

var frameTests = []struct {
	name    string
	prompt  string
	keys    []ui.Key
	wantEnd layout.Pos
	wantCur layout.Pos
	wantNL  bool
	wantPNL bool
}{
	{"short line", "> ", keys("abc"), layout.Pos{Col: 5}, layout.Pos{Col: 5}, false, false},
	{"cursor in middle", "> ", keys("abc", left), layout.Pos{Col: 5}, layout.Pos{Col: 4}, false, false},
	{"wrapping line", "> ", keys("0123456789"), layout.Pos{Row: 1, Col: 2}, layout.Pos{Row: 1, Col: 2}, false, false},
	{"line ending at the margin", "> ", keys("12345678"), layout.Pos{Row: 1}, layout.Pos{Row: 1}, true, false},
	{"wide characters", "> ", keys("你好"), layout.Pos{Col: 6}, layout.Pos{Col: 6}, false, false},
	{"prompt at the margin", "0123456789", keys("ab"), layout.Pos{Row: 1, Col: 2}, layout.Pos{Row: 1, Col: 2}, false, true},
	{"multi-line prompt", "a\n> ", keys("ab"), layout.Pos{Row: 1, Col: 4}, layout.Pos{Row: 1, Col: 4}, false, false},
	{"prompt with escapes", "\033[31m>\033[0m ", keys("ab"), layout.Pos{Col: 4}, layout.Pos{Col: 4}, false, false},
}

func TestReadLine_Frames(t *testing.T) {
	for _, test := range frameTests {
		t.Run(test.name, func(t *testing.T) {
			ed, ttyCtrl := setup()
			ttyCtrl.SetSize(10, 20)
			ttyCtrl.InjectKeys(test.keys...)
			ed.ReadLine(test.prompt)
			f := ttyCtrl.LastFrame()
			if f.End != test.wantEnd || f.Cursor != test.wantCur ||
				f.WrapNewline != test.wantNL || f.PromptNewline != test.wantPNL {
				t.Errorf("got End %v, Cursor %v, WrapNewline %v, PromptNewline %v; "+
					"want %v, %v, %v, %v", f.End, f.Cursor, f.WrapNewline, f.PromptNewline,
					test.wantEnd, test.wantCur, test.wantNL, test.wantPNL)
			}
		})
	}
}

func TestReadLine_BraceMatching(t *testing.T) {
	tests := []struct {
		name string
		keys []ui.Key
		want ui.Text
	}{
		{"closing", keys("(a)", left),
			ui.Text{{Color: ui.BrightRed, Text: "("}, {Color: ui.Default, Text: "a)"}}},
		{"opening", keys("(a)", home),
			ui.Text{{Color: ui.Default, Text: "(a"}, {Color: ui.BrightRed, Text: ")"}}},
		{"unbalanced", keys("(x]y)", home),
			ui.Text{{Color: ui.Default, Text: "(x]y"}, {Color: ui.Error, Text: ")"}}},
		{"no match", keys("(a", home), ui.Text{{Color: ui.Default, Text: "(a"}}},
		{"not on a bracket", keys("(a)"), ui.Text{{Color: ui.Default, Text: "(a)"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ed, ttyCtrl := setup()
			ttyCtrl.InjectKeys(test.keys...)
			ed.ReadLine("> ")
			if diff := cmp.Diff(test.want, ttyCtrl.LastFrame().Display); diff != "" {
				t.Errorf("display (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadLine_Highlighter(t *testing.T) {
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) {
		spec.Highlighter = cli.HighlighterFunc(func(line string, colors []ui.Color) {
			for i, r := range []rune(line) {
				if r >= '0' && r <= '9' {
					colors[i] = ui.Blue
				}
			}
		})
	})
	ttyCtrl.InjectKeys(keys("a12b")...)
	ed.ReadLine("> ")
	want := ui.Text{{Color: ui.Default, Text: "a"}, {Color: ui.Blue, Text: "12"}, {Color: ui.Default, Text: "b"}}
	if diff := cmp.Diff(want, ttyCtrl.LastFrame().Display); diff != "" {
		t.Errorf("display (-want +got):\n%s", diff)
	}
}

func TestReadLine_NoColor(t *testing.T) {
	ed, ttyCtrl := setup(withConfig(func(cfg *cli.Config) { cfg.NoColor = true }),
		func(spec *cli.EditorSpec) {
			spec.Highlighter = cli.HighlighterFunc(func(line string, colors []ui.Color) {
				for i := range colors {
					colors[i] = ui.Red
				}
			})
			spec.Hinter = wordHinter("hello")
		})
	ttyCtrl.InjectKeys(keys("(he", home)...)
	ed.ReadLine("> ")
	f := ttyCtrl.LastFrame()
	if diff := cmp.Diff(ui.Text{{Color: ui.Default, Text: "(he"}}, f.Display); diff != "" || !f.NoColor {
		t.Errorf("display (-want +got):\n%s", diff)
	}
}

func TestReadLine_PanickingCallbacks(t *testing.T) {
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) {
		spec.Completer = cli.CompleterFunc(func(string, int) ([]string, int) { panic("completer") })
		spec.Hinter = cli.HinterFunc(func(string, int, ui.Color) ([]string, int, ui.Color) { panic("hinter") })
		spec.Highlighter = cli.HighlighterFunc(func(string, []ui.Color) { panic("highlighter") })
	})
	line := readLine(t, ed, ttyCtrl, keys("ab", tab, "c", enter)...)
	if line != "abc" {
		t.Errorf("got line %q, want %q", line, "abc")
	}
	if beeps := ttyCtrl.Beeps(); beeps != 1 {
		t.Errorf("got %d beeps, want 1 for the failed completion", beeps)
	}
}

func TestNewEditor_HistoryDB(t *testing.T) {
	db := &histutil.TestDB{AllCmds: []string{"old"}}
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) { spec.HistoryDB = db })
	if line := readLine(t, ed, ttyCtrl, up, enter); line != "old" {
		t.Errorf("got line %q, want %q", line, "old")
	}
	readLine(t, ed, ttyCtrl, keys("new", enter)...)
	if want := []string{"old", "old", "new"}; !cmp.Equal(db.AllCmds, want) {
		t.Errorf("database has %q, want %q", db.AllCmds, want)
	}
	if want := []string{"old", "new"}; !cmp.Equal(ed.History().Entries(), want) {
		t.Errorf("history has %q, want %q", ed.History().Entries(), want)
	}
}

func TestNewEditor_HistoryDBError(t *testing.T) {
	db := &histutil.TestDB{OneOffError: errors.New("fake")}
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) { spec.HistoryDB = db })
	if n := ed.History().Size(); n != 0 {
		t.Errorf("history has %d entries, want 0", n)
	}
	if line := readLine(t, ed, ttyCtrl, keys("x", enter)...); line != "x" {
		t.Errorf("got line %q, want %q", line, "x")
	}
}

func TestPlainReader(t *testing.T) {
	var out strings.Builder
	pr := cli.NewPlainReader(strings.NewReader("a\r\nb\nc"), &out)
	for _, want := range []string{"a", "b", "c"} {
		if line, err := pr.ReadLine("> "); line != want || err != nil {
			t.Errorf("got (%q, %v), want (%q, nil)", line, err, want)
		}
	}
	if _, err := pr.ReadLine("> "); err != io.EOF {
		t.Errorf("got error %v at the end, want io.EOF", err)
	}
	if got := out.String(); got != "> > > > " {
		t.Errorf("prompts written %q", got)
	}
}
