//go:build unix

package term

import (
	"errors"
	"os"

	"github.com/jarvisfriends/replxx/pkg/logutil"
	"github.com/jarvisfriends/replxx/pkg/sys"
)

var logger = logutil.GetLogger("[cli/term] ")

// Fallback size when the terminal size cannot be determined.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// TTY is a terminal in raw mode, combining a Reader and a Writer. It also
// turns SIGWINCH into ResizeEvent values.
type TTY struct {
	in, out *os.File
	*Writer
	reader  Reader
	restore func() error

	stopWinch func()
	resized   chan struct{}
	done      chan struct{}
}

// NewTTY puts the terminal referenced by in into raw mode and returns a TTY
// reading from in and writing to out. Call Close to restore the terminal.
func NewTTY(in, out *os.File) (*TTY, error) {
	restore, err := sys.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(in)
	if err != nil {
		return nil, errors.Join(err, restore())
	}
	winch, stopWinch := sys.NotifyWinch()
	t := &TTY{
		in: in, out: out, Writer: NewWriter(out), reader: reader,
		restore: restore, stopWinch: stopWinch,
		resized: make(chan struct{}, 1), done: make(chan struct{}),
	}
	go t.relayResize(winch)
	return t, nil
}

func (t *TTY) relayResize(winch <-chan os.Signal) {
	for {
		select {
		case <-winch:
			select {
			case t.resized <- struct{}{}:
			default:
			}
			t.reader.Stop()
		case <-t.done:
			return
		}
	}
}

// ReadEvent reads the next event. Malformed escape sequences are logged and
// skipped.
func (t *TTY) ReadEvent() (Event, error) {
	for {
		select {
		case <-t.resized:
			w, h := t.Size()
			return ResizeEvent{Width: w, Height: h}, nil
		default:
		}
		event, err := t.reader.ReadEvent()
		if err == nil {
			return event, nil
		}
		if !IsReadErrorRecoverable(err) {
			return nil, err
		}
		if err != ErrStopped {
			logger.Println("skipping input:", err)
		}
	}
}

// Size returns the width and height of the terminal.
func (t *TTY) Size() (width, height int) {
	h, w := sys.WinSize(t.out)
	if w <= 0 || h <= 0 {
		h, w = sys.WinSize(t.in)
	}
	if w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// Print writes s to the terminal as is.
func (t *TTY) Print(s string) error {
	return t.WriteString(s)
}

// Suspend restores the terminal mode, stops the process group and puts the
// terminal back into raw mode once the process is continued.
func (t *TTY) Suspend() error {
	if err := t.restore(); err != nil {
		return err
	}
	if err := sys.StopSelf(); err != nil {
		logger.Println("stopping self:", err)
	}
	restore, err := sys.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return err
	}
	t.restore = restore
	return nil
}

// Close stops resize handling, releases the reader and restores the terminal
// mode. It does not close the underlying files.
func (t *TTY) Close() error {
	t.stopWinch()
	close(t.done)
	t.reader.Close()
	return t.restore()
}
