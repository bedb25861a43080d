package term

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent Key

// MouseEvent represents a mouse event (either pressing or releasing).
type MouseEvent struct {
	Pos
	Down   bool
	Button int
	Mod    Mod
}

// CursorPosition represents a report of the current cursor position.
type CursorPosition Pos

// PasteSetting indicates the start or finish of pasted text.
type PasteSetting bool

func (KeyEvent) isEvent()       {}
func (MouseEvent) isEvent()     {}
func (CursorPosition) isEvent() {}
func (PasteSetting) isEvent()   {}

// KE constructs a new KeyEvent.
func KE(r rune, mods ...Mod) KeyEvent { return KeyEvent(K(r, mods...)) }
