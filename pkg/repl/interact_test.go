package repl

import (
	"path/filepath"
	"testing"

	"github.com/jarvisfriends/replxx/pkg/must"
	. "github.com/jarvisfriends/replxx/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, Program{},
		ThatReplxx().WithStdin("hello\n").
			WritesStdout("thanks for the input: hello\n"),
		ThatReplxx().WithStdin("\nlast line without newline").
			WritesStdout("thanks for the input: last line without newline\n"),
		ThatReplxx().WithStdin(".quit\nhello\n").DoesNothing(),
		ThatReplxx().WithStdin("a\nb\n.history\n").
			WritesStdout("thanks for the input: a\nthanks for the input: b\n" +
				"   0: a\n   1: b\n   2: .history\n"),
		ThatReplxx().WithStdin(".help\n").WritesStdoutContaining(".history   list the history\n"),
		ThatReplxx().WithStdin(".save\n").
			WritesStderr("no history file; start replxx with -history\n"),

		ThatReplxx("foo").ExitsWith(2).
			WritesStderrContaining("replxx takes no arguments\nUsage:"),
		ThatReplxx("-config", "/a/bad/path.yaml").ExitsWith(2).
			WritesStderrContaining("/a/bad/path.yaml"),
	)
}

func TestProgram_HistoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	must.WriteFile(path, "a\nb\n")

	Test(t, Program{},
		ThatReplxx("-history", path).WithStdin(".history\nc\n").
			WritesStdout("   0: a\n   1: b\n   2: .history\nthanks for the input: c\n"),
	)
	if got, want := must.ReadFileString(path), "a\nb\n.history\nc\n"; got != want {
		t.Errorf("history file contains %q, want %q", got, want)
	}
}

func TestProgram_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	cfg := filepath.Join(dir, "replxx.yaml")
	must.WriteFile(cfg, "max-history-size: 2\n")

	Test(t, Program{},
		ThatReplxx("-config", cfg, "-history", path).WithStdin("a\nb\nc\n").
			WritesStdoutContaining("thanks for the input: c\n"),
	)
	if got, want := must.ReadFileString(path), "b\nc\n"; got != want {
		t.Errorf("history file contains %q, want %q", got, want)
	}
}

func TestProgram_DB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	Test(t, Program{},
		ThatReplxx("-db", db).WithStdin("x\n").WritesStdout("thanks for the input: x\n"),
		ThatReplxx("-db", db).WithStdin(".history\n").
			WritesStdout("   0: x\n   1: .history\n"),
	)
}

func TestEval_Prompt(t *testing.T) {
	s := &session{prompt: "> "}
	if !s.eval(".prompt $ ") {
		t.Fatal(".prompt ended the session")
	}
	if s.prompt != "$ " {
		t.Errorf("prompt is %q after .prompt, want %q", s.prompt, "$ ")
	}
}
