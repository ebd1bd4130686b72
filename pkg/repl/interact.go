package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jarvisfriends/replxx/pkg/cli"
	"github.com/jarvisfriends/replxx/pkg/cli/histutil"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Prompt string
	Config cli.Config
	// File the history is loaded from and saved to. Optional.
	HistoryFile string
	// Database every line is added to. Optional.
	DB histutil.DB
}

type session struct {
	fds  [3]*os.File
	cfg  *InteractConfig
	hist *histutil.History
	// Set while the line editor owns the terminal.
	tty      *term.TTY
	prompt   string
	dbLoaded bool
}

// Interact runs an interactive session until the input ends or a quitting
// command is entered. The line editor is used when standard input is a
// terminal that supports it; otherwise lines are read as they are.
func Interact(fds [3]*os.File, cfg *InteractConfig) error {
	hist := histutil.New(cfg.Config.MaxHistorySize)
	if cfg.HistoryFile != "" {
		if err := hist.Load(cfg.HistoryFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintln(fds[2], "Warning: cannot load history:", err)
		}
	}
	s := &session{fds: fds, cfg: cfg, hist: hist, prompt: cfg.Prompt}

	ed, cleanup := s.newReader()
	defer func() { cleanup() }()

	for {
		line, err := ed.ReadLine(s.prompt)
		if err == io.EOF {
			break
		} else if err == cli.ErrInterrupted {
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isPlain := ed.(*cli.PlainReader); isPlain {
				return err
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			cleanup()
			ed, cleanup = s.plainReader(fds[1]), func() {}
			continue
		}

		if _, isPlain := ed.(*cli.PlainReader); isPlain {
			s.record(line)
		}
		if !s.eval(line) {
			break
		}
	}
	return s.saveHistory()
}

// newReader returns the reader for the session, and a function that gives
// the terminal back.
func (s *session) newReader() (cli.LineReader, func()) {
	in, out := s.fds[0], s.fds[1]
	if !term.IsATTY(in) {
		return s.plainReader(nil), func() {}
	}
	if term.IsUnsupportedTerm() {
		return s.plainReader(out), func() {}
	}
	tty, err := term.NewTTY(in, out)
	if err != nil {
		fmt.Fprintln(s.fds[2], "Warning: cannot set up terminal:", err)
		return s.plainReader(out), func() {}
	}
	s.tty = tty
	ed := cli.NewEditor(cli.EditorSpec{
		TTY:         tty,
		Config:      &s.cfg.Config,
		Completer:   cli.CompleterFunc(completeWord),
		Hinter:      cli.HinterFunc(hintWord),
		Highlighter: cli.HighlighterFunc(highlight),
		History:     s.hist,
		HistoryDB:   s.cfg.DB,
	})
	s.dbLoaded = true
	return ed, func() {
		s.tty = nil
		if err := tty.Close(); err != nil {
			logger.Println("restoring terminal:", err)
		}
	}
}

// plainReader returns a reader that does no editing. Prompts are written to
// out if it is not nil. The history is kept by the session instead.
func (s *session) plainReader(out *os.File) cli.LineReader {
	if s.cfg.DB != nil && !s.dbLoaded {
		if err := s.hist.LoadDB(s.cfg.DB); err != nil {
			logger.Println("can't load history from database:", err)
		}
		s.dbLoaded = true
	}
	if out == nil {
		return cli.NewPlainReader(s.fds[0], nil)
	}
	return cli.NewPlainReader(s.fds[0], out)
}

func (s *session) record(line string) {
	if line == "" {
		return
	}
	s.hist.Add(line)
	if s.cfg.DB != nil {
		if err := histutil.AppendDB(s.cfg.DB, line, s.hist.MaxSize()); err != nil {
			logger.Println("can't add line to database:", err)
		}
	}
}

func (s *session) saveHistory() error {
	if s.cfg.HistoryFile == "" {
		return nil
	}
	return s.hist.Save(s.cfg.HistoryFile)
}

// eval handles one line. It returns false when the session should end.
func (s *session) eval(line string) bool {
	out := s.fds[1]
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ".quit", ".exit":
		return false
	case ".help":
		for _, c := range commands {
			fmt.Fprintf(out, "%-10s %s\n", c.name, c.desc)
		}
	case ".history":
		for i, entry := range s.hist.Entries() {
			fmt.Fprintf(out, "%4d: %s\n", i, entry)
		}
	case ".clear":
		if s.tty != nil {
			if err := s.tty.ClearScreen(); err != nil {
				logger.Println("clearing screen:", err)
			}
		}
	case ".prompt":
		s.prompt = arg
	case ".save":
		if s.cfg.HistoryFile == "" {
			fmt.Fprintln(s.fds[2], "no history file; start replxx with -history")
		} else if err := s.saveHistory(); err != nil {
			fmt.Fprintln(s.fds[2], "cannot save history:", err)
		}
	default:
		if line != "" {
			fmt.Fprintf(out, "thanks for the input: %s\n", line)
		}
	}
	return true
}

var commands = []struct{ name, desc string }{
	{".help", "show this help"},
	{".history", "list the history"},
	{".save", "save the history to the history file"},
	{".clear", "clear the screen"},
	{".prompt", "change the prompt to the rest of the line"},
	{".quit", "quit"},
	{".exit", "quit"},
}
