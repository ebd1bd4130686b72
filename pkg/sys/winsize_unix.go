//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	// Serial consoles report 0.
	return nonZero(int(ws.Row), 24), nonZero(int(ws.Col), 80)
}

func nonZero(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}
