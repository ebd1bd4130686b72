package cli

import (
	"github.com/jarvisfriends/replxx/pkg/cli/term"
)

// TTY is the type the terminal dependency of the editor needs to satisfy.
type TTY interface {
	// ReadEvent blocks until an event is available from the terminal.
	ReadEvent() (term.Event, error)
	// Size returns the width and height of the terminal.
	Size() (width, height int)
	// Refresh renders a frame.
	Refresh(term.Frame) error
	// Print writes text as is. The next frame is expected to be fresh.
	Print(s string) error
	// Beep rings the bell.
	Beep() error
	// ClearScreen clears the screen and moves the cursor to the top left
	// corner.
	ClearScreen() error
}

// Suspender is implemented by a TTY that supports job control.
type Suspender interface {
	// Suspend gives up the terminal and stops the process. It returns after
	// the process is continued and the terminal is taken back.
	Suspend() error
}
