package modeline

import (
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// Display is the surface the modeline renders into: the bottom rows of the
// host, dynamically sized to the content.
type Display interface {
	// Width returns the current width of the display in columns.
	Width() int
	// Update replaces the display content. The lines argument is the
	// number of screen lines the content needs, possibly more than the
	// line breaks in it suggest when the host wraps overlong rows; the
	// display resizes itself accordingly.
	Update(content ui.Text, lines int) error
	// Clear blanks the display and shrinks it back to one line.
	Clear() error
}

// NotifyFunc is the host's notification primitive. It surfaces text to the
// user and returns the same text, so it can be chained and observed.
type NotifyFunc func(text string) string

// Host is the integration surface a Controller installs itself into on
// Enable and withdraws from on Disable. Implementations are interactive
// programs with a command loop; all methods are called from that loop.
type Host interface {
	// AddBeginHook, AddEndHook and AddReadInputHook register command-loop
	// lifecycle callbacks and return functions that unregister them.
	AddBeginHook(func()) (remove func())
	AddEndHook(func()) (remove func())
	AddReadInputHook(func()) (remove func())

	// WrapNotify replaces the host's notification primitive with
	// wrap(original) and returns a function that restores the original.
	WrapNotify(wrap func(NotifyFunc) NotifyFunc) (unwrap func())

	// SetStatusVisible shows or hides the host's native status line. While
	// hidden, the host cedes that screen line.
	SetStatusVisible(visible bool)

	// KeyEcho reports whether the host currently echoes pending keys;
	// SetKeyEcho turns that echo on or off. The controller suppresses the
	// echo while a message is on display and restores it afterwards.
	KeyEcho() bool
	SetKeyEcho(on bool)

	// AmbientMessage returns the current content of the host's transient
	// message surface, or nil if there is none.
	AmbientMessage() ui.Text

	// InputPending reports whether there is unprocessed input; PromptActive
	// reports whether an input-accepting prompt is in progress. A tick
	// arriving in either situation skips entirely.
	InputPending() bool
	PromptActive() bool
}
