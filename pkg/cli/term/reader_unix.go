//go:build unix

package term

import (
	"os"
	"time"

	"github.com/jarvisfriends/replxx/pkg/ui"
)

// reader reads key sequences from a terminal and decodes them into events.
type reader struct {
	fr fileReader
}

func newReader(f *os.File) (*reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &reader{fr}, nil
}

func (rd *reader) ReadEvent() (Event, error) {
	return readEvent(rd.fr)
}

func (rd *reader) Stop() error {
	return rd.fr.Stop()
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// How long to wait for the next byte of an escape sequence. Terminals write a
// whole sequence at once; a longer gap means the user pressed Escape.
var keySeqTimeout = 10 * time.Millisecond

// Returned by decoder.next when the sequence has ended.
const endOfSeq rune = -1

func readEvent(rd byteReaderWithTimeout) (Event, error) {
	r, err := readRune(rd, -1)
	if err != nil {
		return nil, err
	}
	if r != 0x1b {
		return KeyEvent(ctrlKey(r)), nil
	}
	d := &decoder{rd, []rune{r}}
	k, err := d.escape()
	if err != nil {
		return nil, err
	}
	return KeyEvent(k), nil
}

// decoder decodes the rest of a sequence that starts with Escape.
type decoder struct {
	rd  byteReaderWithTimeout
	seq []rune
}

func (d *decoder) next() rune {
	r, err := readRune(d.rd, keySeqTimeout)
	if err != nil {
		return endOfSeq
	}
	d.seq = append(d.seq, r)
	return r
}

func (d *decoder) fail(msg string) error {
	return seqError{msg, string(d.seq)}
}

func (d *decoder) escape() (ui.Key, error) {
	r := d.next()
	// rxvt signals Alt on a CSI or SS3 key with a second Escape.
	alt := false
	if r == 0x1b {
		alt = true
		r = d.next()
	}
	var k ui.Key
	var err error
	switch r {
	case endOfSeq:
		return ui.K('[', ui.Ctrl), nil
	case '[':
		k, err = d.csi()
	case 'O':
		k, err = d.ss3()
	default:
		k = ctrlKey(r)
		k.Mod |= ui.Alt
		return k, nil
	}
	if alt {
		k.Mod |= ui.Alt
	}
	return k, err
}

// csi decodes \e[, numeric arguments separated by semicolons and a final rune.
func (d *decoder) csi() (ui.Key, error) {
	r := d.next()
	if r == endOfSeq {
		return ui.K('[', ui.Alt), nil
	}
	var args []int
	for {
		switch {
		case r == ';':
			args = append(args, 0)
		case '0' <= r && r <= '9':
			if len(args) == 0 {
				args = append(args, 0)
			}
			args[len(args)-1] = args[len(args)-1]*10 + int(r-'0')
		case r == endOfSeq:
			return ui.Key{}, d.fail("incomplete CSI")
		default:
			if k, ok := csiKey(args, r); ok {
				return k, nil
			}
			return ui.Key{}, d.fail("bad CSI")
		}
		r = d.next()
	}
}

// ss3 decodes \eO followed by one rune.
func (d *decoder) ss3() (ui.Key, error) {
	r := d.next()
	if r == endOfSeq {
		return ui.K('O', ui.Alt), nil
	}
	if k, ok := ss3Keys[r]; ok {
		return k, nil
	}
	return ui.Key{}, d.fail("bad G3")
}

// ctrlKey returns the key a byte outside an escape sequence stands for.
func ctrlKey(r rune) ui.Key {
	switch {
	case r == 0x0:
		return ui.K('`', ui.Ctrl)
	case r == 0x1e:
		return ui.K('6', ui.Ctrl)
	case r == 0x1f:
		return ui.K('/', ui.Ctrl)
	case r == ui.Tab || r == ui.Enter || r == ui.Backspace:
		// Same bytes as Ctrl-I, Ctrl-J and Ctrl-?.
		return ui.K(r)
	case 0x1 <= r && r <= 0x1d:
		return ui.K(r+0x40, ui.Ctrl)
	}
	return ui.K(r)
}

// Keys sent as \eO and one rune. Terminals send these without modifiers;
// urxvt uses lowercase letters for Ctrl-modified arrows.
var ss3Keys = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'a': ui.K(ui.Up, ui.Ctrl), 'b': ui.K(ui.Down, ui.Ctrl),
	'c': ui.K(ui.Right, ui.Ctrl), 'd': ui.K(ui.Left, ui.Ctrl),
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// Keys sent as \e[ and a final rune. A modified key has the arguments 1 and
// the modifier, as in \e[1;5C for Ctrl-Right.
var csiKeys = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'Z': ui.K(ui.Tab, ui.Shift),
}

// Keys sent as \e[, a number and ~, with the modifier as an optional second
// argument, as in \e[3;5~ for Ctrl-Delete.
var tildeKeys = map[int]rune{
	1: ui.Home, 7: ui.Home, 4: ui.End, 8: ui.End,
	2: ui.Insert, 3: ui.Delete,
	5: ui.PageUp, 6: ui.PageDown,
	11: ui.F1, 12: ui.F2, 13: ui.F3, 14: ui.F4,
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
}

func csiKey(args []int, last rune) (ui.Key, bool) {
	if last == '~' {
		if len(args) == 0 || len(args) > 2 {
			return ui.Key{}, false
		}
		r, ok := tildeKeys[args[0]]
		if !ok {
			return ui.Key{}, false
		}
		return xtermModify(ui.K(r), args[1:])
	}
	k, ok := csiKeys[last]
	switch {
	case !ok:
		return ui.Key{}, false
	case len(args) == 0:
		return k, true
	case len(args) == 2 && args[0] == 1:
		return xtermModify(k, args[1:])
	}
	return ui.Key{}, false
}

// xtermModify applies the optional modifier argument. It is 1 plus a bit set
// of Shift (1), Alt (2), Ctrl (4) and Meta (8); Meta is taken as Alt.
func xtermModify(k ui.Key, args []int) (ui.Key, bool) {
	if len(args) == 0 || args[0] == 0 {
		return k, true
	}
	if args[0] > 16 {
		return ui.Key{}, false
	}
	bits := args[0] - 1
	if bits&1 != 0 {
		k.Mod |= ui.Shift
	}
	if bits&(2|8) != 0 {
		k.Mod |= ui.Alt
	}
	if bits&4 != 0 {
		k.Mod |= ui.Ctrl
	}
	return k, true
}
