//go:build unix

package term

import (
	"os"
	"time"
	"unicode/utf8"
)

// reader reads terminal escape sequences and decodes them into events.
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

func (rd *reader) ReadRawEvent() (Event, error) {
	r, err := readRune(rd.fr, -1)
	return KE(r), err
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// Used by the readRune closure in readEvent to signal end of the current
// sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes in escape sequences. Modern terminal emulators send
// escape sequences very fast, so 10ms is more than sufficient. SSH
// connections on a slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

func readEvent(rd byteReaderWithTimeout) (event Event, err error) {
	var r rune
	r, err = readRune(rd, -1)
	if err != nil {
		return
	}

	currentSeq := string(r)
	// Attempts to read a rune within keySeqTimeout. It returns
	// runeEndOfSeq on any error; the caller should terminate the current
	// sequence when it sees that value.
	readRune :=
		func() rune {
			r, e := readRune(rd, keySeqTimeout)
			if e != nil {
				return runeEndOfSeq
			}
			currentSeq += string(r)
			return r
		}
	badSeq := func(msg string) {
		err = seqError{msg, currentSeq}
	}

	switch r {
	case 0x1b: // ^[ Escape
		r2 := readRune()
		// Rxvt and derivatives prepend another ESC to a CSI-style or
		// G3-style sequence to signal Alt. Remember that here; it is
		// picked up when parsing those two kinds of sequences.
		hasTwoLeadingESC := false
		if r2 == 0x1b {
			hasTwoLeadingESC = true
			r2 = readRune()
		}
		if r2 == runeEndOfSeq {
			// Nothing follows. Taken as a lone Escape.
			event = KeyEvent{'[', Ctrl}
			break
		}
		switch r2 {
		case '[':
			// A '[' follows. CSI style function key sequence.
			r = readRune()
			if r == runeEndOfSeq {
				event = KeyEvent{'[', Alt}
				return
			}

			nums := make([]int, 0, 2)
			var starter rune

			// Read an optional starter.
			switch r {
			case '<':
				starter = r
				r = readRune()
			case 'M':
				// Mouse event.
				cb := readRune()
				if cb == runeEndOfSeq {
					badSeq("incomplete mouse event")
					return
				}
				cx := readRune()
				if cx == runeEndOfSeq {
					badSeq("incomplete mouse event")
					return
				}
				cy := readRune()
				if cy == runeEndOfSeq {
					badSeq("incomplete mouse event")
					return
				}
				down := true
				button := int(cb & 3)
				if button == 3 {
					down = false
					button = -1
				}
				mod := mouseModify(int(cb))
				event = MouseEvent{
					Pos{int(cy) - 32, int(cx) - 32}, down, button, mod}
				return
			}
		CSISeq:
			for {
				switch {
				case r == ';':
					nums = append(nums, 0)
				case '0' <= r && r <= '9':
					if len(nums) == 0 {
						nums = append(nums, 0)
					}
					cur := len(nums) - 1
					nums[cur] = nums[cur]*10 + int(r-'0')
				case r == runeEndOfSeq:
					// Incomplete CSI.
					badSeq("incomplete CSI")
					return
				default: // Treat as a terminator.
					break CSISeq
				}

				r = readRune()
			}
			if starter == 0 && r == 'R' {
				// Cursor position report.
				if len(nums) != 2 {
					badSeq("bad CPR")
					return
				}
				event = CursorPosition{nums[0], nums[1]}
			} else if starter == '<' && (r == 'm' || r == 'M') {
				// SGR-style mouse event.
				if len(nums) != 3 {
					badSeq("bad SGR mouse event")
					return
				}
				down := r == 'M'
				button := nums[0] & 3
				mod := mouseModify(nums[0])
				event = MouseEvent{Pos{nums[2], nums[1]}, down, button, mod}
			} else if r == '~' && len(nums) == 1 && (nums[0] == 200 || nums[0] == 201) {
				b := nums[0] == 200
				event = PasteSetting(b)
			} else {
				k := parseCSI(nums, r, currentSeq)
				if k == (Key{}) {
					badSeq("bad CSI")
				} else {
					if hasTwoLeadingESC {
						k.Mod |= Alt
					}
					event = KeyEvent(k)
				}
			}
		case 'O':
			// An 'O' follows. G3 style function key sequence: read one
			// rune.
			r = readRune()
			if r == runeEndOfSeq {
				// Nothing follows after 'O'. Taken as Alt-O.
				event = KeyEvent{'O', Alt}
				return
			}
			k, ok := g3Seq[r]
			if ok {
				if hasTwoLeadingESC {
					k.Mod |= Alt
				}
				event = KeyEvent(k)
			} else {
				badSeq("bad G3")
			}
		default:
			// Something other than '[' or 'O' follows. Taken as an
			// Alt-modified key, possibly also modified by Ctrl.
			k := ctrlModify(r2)
			k.Mod |= Alt
			event = KeyEvent(k)
		}
	default:
		event = KeyEvent(ctrlModify(r))
	}
	return
}

// readRune reads a single rune, decoding UTF-8 incrementally. A negative
// timeout means no timeout.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	var buf [utf8.UTFMax]byte
	for n := 0; n < len(buf); {
		b, err := rd.ReadByteWithTimeout(timeout)
		if err != nil {
			return 0, err
		}
		buf[n] = b
		n++
		if utf8.FullRune(buf[:n]) {
			r, _ := utf8.DecodeRune(buf[:n])
			return r, nil
		}
	}
	return utf8.RuneError, nil
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns
// the Key the rune represents.
func ctrlModify(r rune) Key {
	switch r {
	case 0x0:
		return K('`', Ctrl) // ^@
	case 0x1e:
		return K('6', Ctrl) // ^^
	case 0x1f:
		return K('/', Ctrl) // ^_
	case Tab, Enter, Backspace: // ^I ^J ^?
		// Ambiguous Ctrl keys; prefer the non-Ctrl form as they are more
		// likely.
		return K(r)
	default:
		// Regular Ctrl sequences.
		if 0x1 <= r && r <= 0x1d {
			return K(r+0x40, Ctrl)
		}
	}
	return K(r)
}

// Tables for key sequences.

// G3-style key sequences: \eO followed by exactly one character. For
// instance, \eOP is F1. They cannot be extended to support modifier keys,
// other than a leading \e for Alt; terminals that send G3-style sequences
// typically switch to CSI-style sequences when a non-Alt modifier is
// pressed.
var g3Seq = map[rune]Key{
	// xterm, tmux
	'A': K(Up), 'B': K(Down), 'C': K(Right), 'D': K(Left),
	'H': K(Home), 'F': K(End), 'M': K(Insert),
	// urxvt
	'a': K(Up, Ctrl), 'b': K(Down, Ctrl),
	'c': K(Right, Ctrl), 'd': K(Left, Ctrl),
	// xterm, urxvt, tmux
	'P': K(F1), 'Q': K(F2), 'R': K(F3), 'S': K(F4),
}

// CSI-style key sequences identified by the last rune. For instance, \e[A
// is Up. When modified, two numerical arguments are added, the first
// always being 1 and the second identifying the modifier. For instance,
// \e[1;5A is Ctrl-Up.
var csiSeqByLast = map[rune]Key{
	// xterm, urxvt, tmux
	'A': K(Up), 'B': K(Down), 'C': K(Right), 'D': K(Left),
	// urxvt
	'a': K(Up, Shift), 'b': K(Down, Shift),
	'c': K(Right, Shift), 'd': K(Left, Shift),
	// xterm
	'H': K(Home), 'F': K(End),
	// xterm, urxvt, tmux
	'Z': K(Tab, Shift),
}

// CSI-style key sequences ending with '~', with one or two numerical
// arguments. The first argument identifies the key, and the optional
// second argument identifies the modifier. For instance, \e[3~ is Delete,
// and \e[3;5~ is Ctrl-Delete.
//
// An alternative encoding of the modifier key, used by urxvt, is to change
// the last rune: '$' for Shift, '^' for Ctrl, and '@' for Ctrl+Shift. For
// instance, \e[3^ is Ctrl-Delete.
var csiSeqTilde = map[int]rune{
	// tmux (urxvt uses the pair for Find/Select)
	1: Home, 4: End,
	// xterm, urxvt, tmux
	2: Insert,
	// xterm, urxvt, tmux
	3: Delete,
	// xterm, urxvt, tmux; called Prior/Next in the urxvt manpage
	5: PageUp, 6: PageDown,
	// urxvt
	7: Home, 8: End,
	// urxvt
	11: F1, 12: F2, 13: F3, 14: F4,
	// xterm, urxvt, tmux; 16 and 22 are unused
	15: F5, 17: F6, 18: F7, 19: F8,
	20: F9, 21: F10, 23: F11, 24: F12,
}

// CSI-style key sequences ending with '~', with the first argument always
// 27, the second argument identifying the modifier, and the third argument
// identifying the key. For instance, \e[27;5;9~ is Ctrl-Tab.
var csiSeqTilde27 = map[int]rune{
	9: '\t', 13: '\r',
	33: '!', 35: '#', 39: '\'', 40: '(', 41: ')', 43: '+', 44: ',', 45: '-',
	46: '.',
	48: '0', 49: '1', 50: '2', 51: '3', 52: '4', 53: '5', 54: '6', 55: '7',
	56: '8', 57: '9',
	58: ':', 59: ';', 60: '<', 61: '=', 62: '>', 63: ';',
}

// parseCSI parses a CSI-style key sequence. See the comments above the
// tables for the variants this handles.
func parseCSI(nums []int, last rune, seq string) Key {
	if k, ok := csiSeqByLast[last]; ok {
		if len(nums) == 0 {
			// Unmodified: \e[A (Up)
			return k
		} else if len(nums) == 2 && nums[0] == 1 {
			// Modified: \e[1;5A (Ctrl-Up)
			return xtermModify(k, nums[1], seq)
		} else {
			return Key{}
		}
	}

	switch last {
	case '~':
		if len(nums) == 1 || len(nums) == 2 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				k := K(r)
				if len(nums) == 1 {
					// Unmodified: \e[5~ (e.g. PageUp)
					return k
				}
				// Modified: \e[5;5~ (e.g. Ctrl-PageUp)
				return xtermModify(k, nums[1], seq)
			}
		} else if len(nums) == 3 && nums[0] == 27 {
			if r, ok := csiSeqTilde27[nums[2]]; ok {
				k := K(r)
				return xtermModify(k, nums[1], seq)
			}
		}
	case '$', '^', '@':
		// Modified by urxvt; see comment above csiSeqTilde.
		if len(nums) == 1 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				var mod Mod
				switch last {
				case '$':
					mod = Shift
				case '^':
					mod = Ctrl
				case '@':
					mod = Shift | Ctrl
				}
				return K(r, mod)
			}
		}
	}

	return Key{}
}

func xtermModify(k Key, mod int, seq string) Key {
	if mod < 0 || mod > 16 {
		// Out of range
		return Key{}
	}
	if mod == 0 {
		return k
	}
	modFlags := mod - 1
	if modFlags&0x1 != 0 {
		k.Mod |= Shift
	}
	if modFlags&0x2 != 0 {
		k.Mod |= Alt
	}
	if modFlags&0x4 != 0 {
		k.Mod |= Ctrl
	}
	if modFlags&0x8 != 0 {
		// This should be Meta, but we conflate Meta and Alt.
		k.Mod |= Alt
	}
	return k
}

func mouseModify(n int) Mod {
	var mod Mod
	if n&4 != 0 {
		mod |= Shift
	}
	if n&8 != 0 {
		mod |= Alt
	}
	if n&16 != 0 {
		mod |= Ctrl
	}
	return mod
}
