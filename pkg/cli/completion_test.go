package cli_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jarvisfriends/replxx/pkg/cli"
	"github.com/jarvisfriends/replxx/pkg/cli/layout"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// matchingWords returns the words that start with the context.
func matchingWords(words []string, line string, contextLen int) []string {
	rs := []rune(line)
	prefix := string(rs[len(rs)-contextLen:])
	var matches []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
	}
	return matches
}

func wordCompleter(words ...string) cli.Completer {
	return cli.CompleterFunc(func(line string, contextLen int) ([]string, int) {
		return matchingWords(words, line, contextLen), contextLen
	})
}

func wordHinter(words ...string) cli.Hinter {
	return cli.HinterFunc(func(line string, contextLen int, color ui.Color) ([]string, int, ui.Color) {
		if contextLen == 0 {
			return nil, 0, color
		}
		return matchingWords(words, line, contextLen), contextLen, color
	})
}

func withCompleter(words ...string) func(*cli.EditorSpec) {
	return func(spec *cli.EditorSpec) { spec.Completer = wordCompleter(words...) }
}

func withHinter(words ...string) func(*cli.EditorSpec) {
	return func(spec *cli.EditorSpec) { spec.Hinter = wordHinter(words...) }
}

func noColor(cfg *cli.Config) { cfg.NoColor = true }

var completionTests = []struct {
	name        string
	config      func(*cli.Config)
	keys        []ui.Key
	wantLine    string
	wantPrinted string
	wantBeeps   int
}{
	{
		name: "extend to common prefix", keys: keys("he", tab, enter),
		wantLine: "hel", wantPrinted: "\n",
	},
	{
		name: "extend to only candidate", keys: keys("hell", tab, enter),
		wantLine: "hello", wantPrinted: "\n",
	},
	{
		name: "extend in middle of line", keys: keys("he x", left, left, tab, enter),
		wantLine: "hel x", wantPrinted: "\n",
	},
	{
		name: "no candidates", keys: keys("xyz", tab, enter),
		wantLine: "xyz", wantPrinted: "\n", wantBeeps: 1,
	},
	{
		name: "list", config: noColor, keys: keys("hel", tab, enter),
		wantLine: "hel", wantPrinted: "\nhello  help\n\n",
	},
	{
		name:   "beep when ambiguous",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.BeepOnAmbiguousCompletion = true, true },
		keys:   keys("hel", tab, enter), wantLine: "hel", wantPrinted: "\nhello  help\n\n", wantBeeps: 1,
	},
	{
		name:   "double tab waits for second tab",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.DoubleTabCompletion = true, true },
		keys:   keys("hel", tab, "p", enter), wantLine: "help", wantPrinted: "\n",
	},
	{
		name:   "double tab lists",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.DoubleTabCompletion = true, true },
		keys:   keys("hel", tab, tab, enter), wantLine: "hel", wantPrinted: "\nhello  help\n\n",
	},
	{
		name:   "confirm and decline",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.CompletionCountCutoff = true, 1 },
		keys:   keys("hel", tab, "x", "n", enter), wantLine: "hel",
		wantPrinted: "\nDisplay all 2 possibilities? (y or n)\n\n",
	},
	{
		name:   "confirm and accept",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.CompletionCountCutoff = true, 1 },
		keys:   keys("hel", tab, "y", enter), wantLine: "hel",
		wantPrinted: "\nDisplay all 2 possibilities? (y or n)\033[J\nhello  help\n\n",
	},
	{
		name:   "confirm and interrupt",
		config: func(cfg *cli.Config) { cfg.NoColor, cfg.CompletionCountCutoff = true, 1 },
		keys:   keys("hel", tab, ctrl('C'), enter), wantLine: "hel",
		wantPrinted: "\nDisplay all 2 possibilities? (y or n)^C\n\n",
	},
	{
		name:     "empty line",
		keys:     keys(tab, enter),
		wantLine: "hel", wantPrinted: "\n",
	},
	{
		name:     "empty line without complete-on-empty",
		config:   func(cfg *cli.Config) { cfg.CompleteOnEmpty = false },
		keys:     keys(tab, enter),
		wantLine: "", wantPrinted: "\n", wantBeeps: 1,
	},
}

func TestReadLine_Completion(t *testing.T) {
	for _, test := range completionTests {
		t.Run(test.name, func(t *testing.T) {
			specs := []func(*cli.EditorSpec){withCompleter("hello", "help")}
			if test.config != nil {
				specs = append(specs, withConfig(test.config))
			}
			ed, ttyCtrl := setup(specs...)
			if line := readLine(t, ed, ttyCtrl, test.keys...); line != test.wantLine {
				t.Errorf("got line %q, want %q", line, test.wantLine)
			}
			if printed := ttyCtrl.Printed(); printed != test.wantPrinted {
				t.Errorf("printed %q, want %q", printed, test.wantPrinted)
			}
			if beeps := ttyCtrl.Beeps(); beeps != test.wantBeeps {
				t.Errorf("got %d beeps, want %d", beeps, test.wantBeeps)
			}
		})
	}
}

var pagerTests = []struct {
	name        string
	keys        []ui.Key
	wantPrinted string
	wantBeeps   int
}{
	{
		"one more line then quit", keys("a", tab, "x", enter, "q", enter),
		"\na1\na2\n--More--\r        \ra3\n--More--\r        \r\n", 1,
	},
	{
		"next page", keys("a", tab, " ", " ", enter),
		"\na1\na2\n--More--\r        \ra3\na4\n--More--\r        \ra5\n\n", 0,
	},
	{
		"interrupt", keys("a", tab, ctrl('C'), enter),
		"\na1\na2\n--More--^C\n\n", 0,
	},
}

func TestReadLine_CompletionPager(t *testing.T) {
	for _, test := range pagerTests {
		t.Run(test.name, func(t *testing.T) {
			ed, ttyCtrl := setup(withConfig(noColor), withCompleter("a1", "a2", "a3", "a4", "a5"))
			// One candidate per row, and a pause before the third row.
			ttyCtrl.SetSize(5, 3)
			if line := readLine(t, ed, ttyCtrl, test.keys...); line != "a" {
				t.Errorf("got line %q, want %q", line, "a")
			}
			if printed := ttyCtrl.Printed(); printed != test.wantPrinted {
				t.Errorf("printed %q, want %q", printed, test.wantPrinted)
			}
			if beeps := ttyCtrl.Beeps(); beeps != test.wantBeeps {
				t.Errorf("got %d beeps, want %d", beeps, test.wantBeeps)
			}
		})
	}
}

func TestReadLine_CompletionRedrawsAfterListing(t *testing.T) {
	ed, ttyCtrl := setup(withConfig(noColor), withCompleter("hello", "help"))
	ttyCtrl.InjectKeys(keys("hel", tab)...)
	ed.ReadLine("> ")
	f := ttyCtrl.LastFrame()
	if !f.Fresh || f.Display.String() != "hel" {
		t.Errorf("frame after listing is %+v, want a fresh frame with the line", f)
	}
}

func TestReadLine_CompletionUsesSelectedHint(t *testing.T) {
	words := []string{"hello", "help"}
	ed, ttyCtrl := setup(withCompleter(words...), withHinter(words...))
	line := readLine(t, ed, ttyCtrl, keys("hel", ctrl(ui.Down), ctrl(ui.Down), tab, enter)...)
	if line != "help" {
		t.Errorf("got line %q, want %q", line, "help")
	}
}

var hintTests = []struct {
	name        string
	config      func(*cli.Config)
	words       []string
	keys        []ui.Key
	wantDisplay string
	wantEnd     layout.Pos
}{
	{
		name: "single hint", words: []string{"hello"}, keys: keys("he"),
		wantDisplay: "hello", wantEnd: layout.Pos{Col: 7},
	},
	{
		name: "multiple hints", words: []string{"hello", "help", "helmet"}, keys: keys("hel"),
		wantDisplay: "hel\n  hello\n  help\n  helmet", wantEnd: layout.Pos{Row: 3, Col: 5},
	},
	{
		name: "select next", words: []string{"hello", "help", "helmet"}, keys: keys("hel", ctrl(ui.Down)),
		wantDisplay: "hello\n  help\n  helmet\n  hel", wantEnd: layout.Pos{Row: 3, Col: 7},
	},
	{
		name: "select previous", words: []string{"hello", "help", "helmet"}, keys: keys("hel", ctrl(ui.Up)),
		wantDisplay: "helmet\n  hel\n  hello\n  help", wantEnd: layout.Pos{Row: 3, Col: 8},
	},
	{
		name: "selection reset by typing", words: []string{"hello", "help", "helmet"},
		keys:        keys("he", ctrl(ui.Down), "l"),
		wantDisplay: "hel\n  hello\n  help\n  helmet", wantEnd: layout.Pos{Row: 3, Col: 5},
	},
	{
		name: "limited rows", config: func(cfg *cli.Config) { cfg.MaxHintRows = 2 },
		words: []string{"hello", "help", "helmet"}, keys: keys("hel"),
		wantDisplay: "hel\n  hello\n  help", wantEnd: layout.Pos{Row: 2, Col: 5},
	},
	{
		name: "no rows", config: func(cfg *cli.Config) { cfg.MaxHintRows = 0 },
		words: []string{"hello", "help"}, keys: keys("hel"),
		wantDisplay: "hel", wantEnd: layout.Pos{Col: 5},
	},
	{
		name: "cursor not at end", words: []string{"hello"}, keys: keys("he", left),
		wantDisplay: "he", wantEnd: layout.Pos{Col: 4},
	},
	{
		name: "no color", config: noColor, words: []string{"hello"}, keys: keys("he"),
		wantDisplay: "he", wantEnd: layout.Pos{Col: 4},
	},
}

func TestReadLine_Hints(t *testing.T) {
	for _, test := range hintTests {
		t.Run(test.name, func(t *testing.T) {
			specs := []func(*cli.EditorSpec){withHinter(test.words...)}
			if test.config != nil {
				specs = append(specs, withConfig(test.config))
			}
			ed, ttyCtrl := setup(specs...)
			ttyCtrl.InjectKeys(test.keys...)
			ed.ReadLine("> ")
			f := ttyCtrl.LastFrame()
			if got := f.Display.String(); got != test.wantDisplay {
				t.Errorf("display %q, want %q", got, test.wantDisplay)
			}
			if f.End != test.wantEnd {
				t.Errorf("end %v, want %v", f.End, test.wantEnd)
			}
		})
	}
}

func TestReadLine_HintColor(t *testing.T) {
	ed, ttyCtrl := setup(func(spec *cli.EditorSpec) {
		spec.Hinter = cli.HinterFunc(func(string, int, ui.Color) ([]string, int, ui.Color) {
			return []string{"hello"}, 2, ui.Blue
		})
	})
	ttyCtrl.InjectKeys(keys("he")...)
	ed.ReadLine("> ")
	want := ui.Text{{Color: ui.Default, Text: "he"}, {Color: ui.Blue, Text: "llo"}}
	if diff := cmp.Diff(want, ttyCtrl.LastFrame().Display); diff != "" {
		t.Errorf("display (-want +got):\n%s", diff)
	}
}

func TestReadLine_HintRowsAfterExactWrap(t *testing.T) {
	ed, ttyCtrl := setup(withHinter("123456789a", "123456789b"))
	ttyCtrl.SetSize(10, 20)
	ttyCtrl.InjectKeys(keys("12345678")...)
	ed.ReadLine("> ")
	f := ttyCtrl.LastFrame()
	if f.End != (layout.Pos{Row: 2}) || f.WrapNewline {
		t.Errorf("got End %v and WrapNewline %v, want {2 0} and false", f.End, f.WrapNewline)
	}
}

func TestReadLine_CommitHidesHints(t *testing.T) {
	ed, ttyCtrl := setup(withHinter("hello"))
	readLine(t, ed, ttyCtrl, keys("he", enter)...)
	if got := ttyCtrl.LastFrame().Display.String(); got != "he" {
		t.Errorf("final display %q, want %q", got, "he")
	}
}
