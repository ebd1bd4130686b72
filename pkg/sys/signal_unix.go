//go:build unix

package sys

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// NotifyWinch returns a channel on which SIGWINCH is delivered, and a
// function that stops the delivery.
func NotifyWinch() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}

// StopSelf stops the process group of the current process, as if the suspend
// character had been typed on the terminal, and returns after the process
// has been continued.
func StopSelf() error {
	cont := make(chan os.Signal, 1)
	signal.Notify(cont, unix.SIGCONT)
	defer signal.Stop(cont)
	if err := unix.Kill(0, unix.SIGTSTP); err != nil {
		return err
	}
	<-cont
	return nil
}
