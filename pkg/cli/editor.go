// Package cli implements an interactive line editor.
package cli

import (
	"errors"
	"strings"

	"github.com/jarvisfriends/replxx/pkg/cli/hint"
	"github.com/jarvisfriends/replxx/pkg/cli/histutil"
	"github.com/jarvisfriends/replxx/pkg/cli/killring"
	"github.com/jarvisfriends/replxx/pkg/cli/linebuf"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
	"github.com/jarvisfriends/replxx/pkg/logutil"
	"github.com/jarvisfriends/replxx/pkg/ui"
	"github.com/jarvisfriends/replxx/pkg/wcwidth"
)

var logger = logutil.GetLogger("[cli] ")

// ErrInterrupted is returned by ReadLine when the line is aborted with Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// State is the state of a line session.
type State int

// Values for State.
const (
	// The line is being edited.
	Editing State = iota
	// The line has been committed.
	Committed
	// The line has been given up, because of an abort or the end of input.
	Aborted
)

// EditorSpec specifies the configuration and collaborators of an Editor.
// Fields left at zero values get sensible defaults, except TTY, which is
// required.
type EditorSpec struct {
	TTY TTY
	// Configuration. The zero value means DefaultConfig().
	Config *Config

	Completer   Completer
	Hinter      Hinter
	Highlighter Highlighter

	// History to use. If nil, a new one is created with the configured
	// maximum size.
	History *histutil.History
	// If not nil, history is loaded from HistoryDB when the editor is created
	// and every committed line is appended to it.
	HistoryDB histutil.DB

	// Column width of a codepoint. Defaults to wcwidth.OfRune.
	Width func(rune) int
}

// Editor reads lines from a terminal. It is not safe for concurrent use.
type Editor struct {
	tty         TTY
	cfg         Config
	bindings    map[ui.Key]string
	completer   Completer
	hinter      Hinter
	highlighter Highlighter
	db          histutil.DB
	runeWidth   func(rune) int

	hist *histutil.History
	kill *killring.Ring
	buf  *linebuf.Buffer

	prompt        string
	width, height int
	hintSelection int
	// Whether the next refresh starts on a new screen region.
	fresh bool
	// Keys to handle before reading more from the terminal.
	pending []ui.Key
	// Called after the terminal is resized; nil while nothing should be
	// redrawn.
	onResize func()
	// Set together with the Aborted state.
	exitErr error

	preload       string
	preloadNotice string
	lastQuery     []rune
}

// NewEditor creates a new Editor from the given specification.
func NewEditor(spec EditorSpec) *Editor {
	cfg := DefaultConfig()
	if spec.Config != nil {
		cfg = *spec.Config
	}
	width := spec.Width
	if width == nil {
		width = wcwidth.OfRune
	}
	hist := spec.History
	if hist == nil {
		hist = histutil.New(cfg.MaxHistorySize)
	}
	ed := &Editor{
		tty:           spec.TTY,
		cfg:           cfg,
		bindings:      cfg.bindings(),
		completer:     spec.Completer,
		hinter:        spec.Hinter,
		highlighter:   spec.Highlighter,
		db:            spec.HistoryDB,
		runeWidth:     width,
		hist:          hist,
		kill:          killring.New(cfg.KillRingSize),
		buf:           linebuf.New(linebuf.NewBreakSet(cfg.BreakChars), width),
		hintSelection: hint.NoSelection,
	}
	if ed.db != nil {
		if err := hist.LoadDB(ed.db); err != nil {
			logger.Println("can't load history from database:", err)
		}
	}
	return ed
}

// History returns the history used by the editor.
func (ed *Editor) History() *histutil.History { return ed.hist }

// Bindings returns a copy of the resolved key bindings, from keys to action
// names.
func (ed *Editor) Bindings() map[ui.Key]string {
	m := make(map[ui.Key]string, len(ed.bindings))
	for k, a := range ed.bindings {
		m[k] = a
	}
	return m
}

// SetPreloadBuffer sets the initial content of the next line. Carriage returns
// are dropped and each run of newlines and tabs becomes one space. Other
// control characters become spaces, and a notice is printed before the next
// prompt when there were any.
func (ed *Editor) SetPreloadBuffer(text string) {
	var edited bool
	ed.preload, edited = sanitizePreload(text)
	ed.preloadNotice = ""
	if edited {
		ed.preloadNotice = " [Edited line: control characters were converted to spaces]\n"
	}
}

func sanitizePreload(s string) (string, bool) {
	var sb strings.Builder
	edited := false
	inSpaceRun := false
	for _, r := range s {
		switch {
		case r == '\r':
		case r == '\n' || r == '\t':
			if !inSpaceRun {
				sb.WriteByte(' ')
				inSpaceRun = true
			}
		case isControl(r):
			edited = true
			if !inSpaceRun {
				sb.WriteByte(' ')
			}
			inSpaceRun = false
		default:
			sb.WriteRune(r)
			inSpaceRun = false
		}
	}
	return sb.String(), edited
}

func isControl(r rune) bool {
	return r < 0x20 || (0x7f <= r && r <= 0x9f)
}

// ReadLine shows the prompt and reads a line. It returns the committed line,
// ErrInterrupted when the line is aborted, io.EOF when Ctrl-D is pressed on an
// empty line, and errors from the terminal as is, including io.EOF when the
// input is exhausted.
func (ed *Editor) ReadLine(prompt string) (string, error) {
	if ed.preloadNotice != "" {
		ed.print(ed.preloadNotice)
		ed.preloadNotice = ""
	}
	ed.prompt = prompt
	ed.width, ed.height = ed.tty.Size()
	ed.buf.SetString(ed.preload)
	ed.preload = ""
	ed.hist.BeginEdit(ed.buf.String())
	ed.kill.SetLastAction(killring.Other)
	ed.hintSelection = hint.NoSelection
	ed.pending = nil
	ed.exitErr = nil
	ed.onResize = func() { ed.refresh(hintRepaint) }
	defer func() { ed.onResize = nil }()

	ed.fresh = true
	ed.refresh(hintRegenerate)
	for {
		k, err := ed.readKey()
		if err != nil {
			ed.fail(err)
			return "", err
		}
		switch ed.handleKey(k) {
		case Committed:
			return ed.commit(), nil
		case Aborted:
			return "", ed.exitErr
		}
	}
}

func (ed *Editor) commit() string {
	line := ed.buf.String()
	ed.hist.CommitIndex()
	ed.hist.DropLast()
	if line != "" {
		ed.hist.Add(line)
		if ed.db != nil {
			if err := histutil.AppendDB(ed.db, line, ed.hist.MaxSize()); err != nil {
				logger.Println("can't save command to database:", err)
			}
		}
	}
	ed.print("\n")
	return line
}

// fail ends the session with err.
func (ed *Editor) fail(err error) State {
	ed.hist.DropLast()
	ed.exitErr = err
	return Aborted
}

// readKey returns the next key, from the pending keys first. Resize events are
// handled here.
func (ed *Editor) readKey() (ui.Key, error) {
	if len(ed.pending) > 0 {
		k := ed.pending[0]
		ed.pending = ed.pending[1:]
		return k, nil
	}
	for {
		event, err := ed.tty.ReadEvent()
		if err != nil {
			return ui.Key{}, err
		}
		switch event := event.(type) {
		case term.KeyEvent:
			return ui.Key(event), nil
		case term.ResizeEvent:
			logger.Printf("resized to %dx%d", event.Width, event.Height)
			ed.width, ed.height = event.Width, event.Height
			if ed.onResize != nil {
				ed.onResize()
			}
		}
	}
}

// pushBack arranges for k to be handled again.
func (ed *Editor) pushBack(k ui.Key) {
	ed.pending = append([]ui.Key{k}, ed.pending...)
}

func (ed *Editor) handleKey(k ui.Key) State {
	if name, ok := ed.bindings[k]; ok {
		return actions[name](ed, k)
	}
	return insertChar(ed, k)
}

func (ed *Editor) print(s string) {
	if err := ed.tty.Print(s); err != nil {
		logger.Println("print:", err)
	}
}

func (ed *Editor) beep() {
	if err := ed.tty.Beep(); err != nil {
		logger.Println("beep:", err)
	}
}

// columns returns the column width of rs.
func (ed *Editor) columns(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += ed.runeWidth(r)
	}
	return w
}
