package term

import (
	"fmt"
	"strings"
)

// Key represents a single keyboard input, typically assembled from an
// escape sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod uint8

// Values for Mod.
const (
	// Shift is the shift modifier.
	Shift Mod = 1 << iota
	// Alt is the alt modifier.
	Alt
	// Ctrl is the ctrl modifier.
	Ctrl
)

// Negative runes in the Rune field represent function keys.
const (
	// F1 is the rune for the F1 function key.
	F1 rune = -iota - 1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	Up
	Down
	Right
	Left
	Home
	Insert
	Delete
	End
	PageUp
	PageDown

	// Keys that have a rune of their own. Those that double as control
	// characters are written in their non-Ctrl form.
	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
)

var functionKeyNames = [...]string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace",
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&Ctrl != 0 {
		sb.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		sb.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		sb.WriteString("Shift-")
	}
	if k.Rune > 0 {
		if name, ok := keyNames[k.Rune]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteRune(k.Rune)
		}
	} else {
		i := int(-k.Rune - 1)
		if i < len(functionKeyNames) {
			sb.WriteString(functionKeyNames[i])
		} else {
			fmt.Fprintf(&sb, "(bad function key %d)", k.Rune)
		}
	}
	return sb.String()
}
