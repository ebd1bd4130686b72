//go:build unix

package sys

import (
	"io"
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/jarvisfriends/replxx/pkg/must"
)

func TestWaitForRead(t *testing.T) {
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	defer closeAll(r0, w0, r1, w1)

	w0.WriteString("x")
	ready, err := WaitForRead(-1, r0, r1)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if !ready[0] {
		t.Error("Want ready[0]")
	}
	if ready[1] {
		t.Error("Don't want ready[1]")
	}
}

func TestWaitForRead_Timeout(t *testing.T) {
	r, w := must.Pipe()
	defer closeAll(r, w)

	ready, err := WaitForRead(0, r)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if ready[0] {
		t.Error("Don't want ready[0]")
	}
}

func TestIsATTY(t *testing.T) {
	ptmx, tty := must.OK2(pty.Open())
	defer closeAll(ptmx, tty)
	r, w := must.Pipe()
	defer closeAll(r, w)

	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(tty) = false, want true")
	}
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) = true, want false")
	}
}

func TestWinSize(t *testing.T) {
	ptmx, tty := must.OK2(pty.Open())
	defer closeAll(ptmx, tty)

	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))
	row, col := WinSize(tty)
	if row != 30 || col != 100 {
		t.Errorf("WinSize -> (%d, %d), want (30, 100)", row, col)
	}

	must.OK(pty.Setsize(ptmx, &pty.Winsize{}))
	row, col = WinSize(tty)
	if row != 24 || col != 80 {
		t.Errorf("WinSize of zero-sized terminal -> (%d, %d), want (24, 80)", row, col)
	}

	r, w := must.Pipe()
	defer closeAll(r, w)
	row, col = WinSize(r)
	if row != -1 || col != -1 {
		t.Errorf("WinSize of pipe -> (%d, %d), want (-1, -1)", row, col)
	}
}

func TestMakeRaw(t *testing.T) {
	ptmx, tty := must.OK2(pty.Open())
	defer closeAll(ptmx, tty)
	fd := int(tty.Fd())

	restore, err := MakeRaw(fd)
	if err != nil {
		t.Fatal("MakeRaw errors:", err)
	}
	raw := must.OK1(unix.IoctlGetTermios(fd, getAttrIOCTL))
	if raw.Lflag&(unix.ECHO|unix.ICANON|unix.ISIG) != 0 {
		t.Errorf("raw mode still has ECHO, ICANON or ISIG set")
	}
	if raw.Oflag&unix.OPOST == 0 {
		t.Errorf("raw mode has OPOST cleared")
	}

	must.OK(restore())
	cooked := must.OK1(unix.IoctlGetTermios(fd, getAttrIOCTL))
	if cooked.Lflag&unix.ICANON == 0 {
		t.Errorf("restored mode has ICANON cleared")
	}
}

func TestMakeRaw_NotATerminal(t *testing.T) {
	r, w := must.Pipe()
	defer closeAll(r, w)
	_, err := MakeRaw(int(r.Fd()))
	if err == nil {
		t.Errorf("MakeRaw on pipe returns nil error")
	}
}

func closeAll(files ...io.Closer) {
	for _, file := range files {
		file.Close()
	}
}
