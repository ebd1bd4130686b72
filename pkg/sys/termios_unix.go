//go:build unix

package sys

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	rawLmaskOff = unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	rawImaskOff = unix.IXON | unix.ICRNL | unix.INLCR | unix.IGNCR | unix.ISTRIP
)

// MakeRaw puts the terminal referenced by fd into the mode the line editor
// reads keys in: no echo, no line buffering, no signal generation and no
// input translation. Output processing is left alone so that "\n" still
// moves to the start of the next line. It returns a function that restores
// the original mode.
func MakeRaw(fd int) (restore func() error, err error) {
	saved, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}
	term := *saved
	term.Lflag &^= rawLmaskOff
	term.Iflag &^= rawImaskOff
	term.Cflag = term.Cflag&^(unix.CSIZE|unix.PARENB) | unix.CS8
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, setAttrIOCTL, &term); err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}
	return func() error {
		return unix.IoctlSetTermios(fd, setAttrIOCTL, saved)
	}, nil
}
