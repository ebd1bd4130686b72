// Package clitest provides utilities for testing cli.Editor.
package clitest

import (
	"io"
	"strings"

	"github.com/jarvisfriends/replxx/pkg/cli"
	"github.com/jarvisfriends/replxx/pkg/cli/term"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Initial size of fake TTY.
const (
	FakeTTYWidth  = 50
	FakeTTYHeight = 20
)

// An implementation of the cli.TTY and cli.Suspender interfaces that is useful
// in tests. Events are scripted in advance, and everything written to it is
// recorded.
type fakeTTY struct {
	events []term.Event
	// Error returned by ReadEvent when events run out.
	eofErr error

	width, height int

	// Every frame passed to Refresh.
	frames []term.Frame
	// Everything passed to Print.
	printed strings.Builder
	// Full terminal output, as a real terminal would see it.
	output strings.Builder
	writer *term.Writer

	beeps, cleared, suspended int
}

var (
	_ cli.TTY       = (*fakeTTY)(nil)
	_ cli.Suspender = (*fakeTTY)(nil)
)

// NewFakeTTY creates a new FakeTTY and a handle for controlling it. The initial
// size of the terminal is FakeTTYWidth and FakeTTYHeight.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{eofErr: io.EOF, width: FakeTTYWidth, height: FakeTTYHeight}
	tty.writer = term.NewWriter(&tty.output)
	return tty, TTYCtrl{tty}
}

// Returns the next scripted event. Resize events also change the size. When
// there are no more events, it returns the error set with SetEOFError, io.EOF
// by default.
func (t *fakeTTY) ReadEvent() (term.Event, error) {
	if len(t.events) == 0 {
		return nil, t.eofErr
	}
	event := t.events[0]
	t.events = t.events[1:]
	if r, ok := event.(term.ResizeEvent); ok {
		t.width, t.height = r.Width, r.Height
	}
	return event, nil
}

func (t *fakeTTY) Size() (width, height int) { return t.width, t.height }

func (t *fakeTTY) Refresh(f term.Frame) error {
	t.frames = append(t.frames, f)
	return t.writer.Refresh(f)
}

func (t *fakeTTY) Print(s string) error {
	t.printed.WriteString(s)
	return t.writer.WriteString(s)
}

func (t *fakeTTY) Beep() error {
	t.beeps++
	return t.writer.Beep()
}

func (t *fakeTTY) ClearScreen() error {
	t.cleared++
	return t.writer.ClearScreen()
}

func (t *fakeTTY) Suspend() error {
	t.suspended++
	return nil
}

// TTYCtrl is an interface for controlling a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// Inject appends events to the script.
func (t TTYCtrl) Inject(events ...term.Event) {
	t.events = append(t.events, events...)
}

// InjectKeys appends key events to the script.
func (t TTYCtrl) InjectKeys(keys ...ui.Key) {
	for _, k := range keys {
		t.events = append(t.events, term.KeyEvent(k))
	}
}

// InjectString appends one key event for each rune of s.
func (t TTYCtrl) InjectString(s string) {
	for _, r := range s {
		t.events = append(t.events, term.K(r))
	}
}

// SetEOFError sets the error returned when the script runs out.
func (t TTYCtrl) SetEOFError(err error) { t.eofErr = err }

// SetSize sets the size of the fake terminal.
func (t TTYCtrl) SetSize(width, height int) {
	t.width, t.height = width, height
}

// Frames returns all frames that have been rendered.
func (t TTYCtrl) Frames() []term.Frame {
	return append([]term.Frame(nil), t.frames...)
}

// LastFrame returns the last frame rendered, or the zero Frame if there is
// none.
func (t TTYCtrl) LastFrame() term.Frame {
	if len(t.frames) == 0 {
		return term.Frame{}
	}
	return t.frames[len(t.frames)-1]
}

// LastDisplay returns the plain text of the last frame rendered.
func (t TTYCtrl) LastDisplay() string {
	return t.LastFrame().Display.String()
}

// Printed returns everything printed outside of frames.
func (t TTYCtrl) Printed() string { return t.printed.String() }

// Output returns everything written to the terminal, including escape
// sequences.
func (t TTYCtrl) Output() string { return t.output.String() }

// Beeps returns the number of beeps.
func (t TTYCtrl) Beeps() int { return t.beeps }

// Cleared returns the number of times the screen has been cleared.
func (t TTYCtrl) Cleared() int { return t.cleared }

// Suspended returns the number of times the terminal has been suspended.
func (t TTYCtrl) Suspended() int { return t.suspended }
