package editor

import (
	"errors"

	"github.com/liushihao456/emacs-mini-modeline/pkg/modeline"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// The editor implements modeline.Host and, through Minibuf, the
// modeline.Display that occupies its bottom rows.

// AddBeginHook registers a hook to run when a command cycle starts.
func (ed *Editor) AddBeginHook(f func()) (remove func()) {
	return ed.beginHooks.add(f)
}

// AddEndHook registers a hook to run when a command cycle finishes.
func (ed *Editor) AddEndHook(f func()) (remove func()) {
	return ed.endHooks.add(f)
}

// AddReadInputHook registers a hook to run when a command blocks waiting
// for further keys, like the C-x prefix.
func (ed *Editor) AddReadInputHook(f func()) (remove func()) {
	return ed.readInputHooks.add(f)
}

// WrapNotify replaces the editor's notification primitive with
// wrap(original). The returned function restores the original.
func (ed *Editor) WrapNotify(wrap func(modeline.NotifyFunc) modeline.NotifyFunc) (unwrap func()) {
	old := ed.notify
	ed.notify = wrap(old)
	return func() { ed.notify = old }
}

// SetStatusVisible shows or hides the editor's native status row.
func (ed *Editor) SetStatusVisible(visible bool) {
	ed.statusVisible = visible
	ed.loop.redraw(false)
}

// StatusVisible reports whether the native status row is shown.
func (ed *Editor) StatusVisible() bool { return ed.statusVisible }

// KeyEcho reports whether pending prefix keys are echoed.
func (ed *Editor) KeyEcho() bool { return ed.keyEcho }

// SetKeyEcho turns the pending-key echo on or off.
func (ed *Editor) SetKeyEcho(on bool) { ed.keyEcho = on }

// AmbientMessage returns the editor's transient message surface: the
// pending prefix keys when they are echoed, otherwise nil.
func (ed *Editor) AmbientMessage() ui.Text {
	if !ed.keyEcho || len(ed.pending) == 0 {
		return nil
	}
	var s string
	for _, k := range ed.pending {
		s += k.String() + "-"
	}
	return ui.T(s)
}

// InputPending reports whether there are unhandled input events.
func (ed *Editor) InputPending() bool {
	return ed.loop.inputPending()
}

// PromptActive reports whether an interactive minibuffer prompt is in
// progress. The editor has no such prompts yet, so this is always false;
// the method exists to satisfy the host contract.
func (ed *Editor) PromptActive() bool { return false }

// Minibuf is the modeline display surface of an editor: its bottom rows,
// sized to the content written into them.
type Minibuf struct {
	ed *Editor
}

// Minibuf returns the editor's modeline display surface.
func (ed *Editor) Minibuf() Minibuf { return Minibuf{ed} }

var errNoWidth = errors.New("terminal has no width")

// Width returns the width of the display in columns.
func (m Minibuf) Width() int {
	_, width := m.ed.tty.Size()
	return width
}

// Update replaces the display content and resizes the display to the
// given number of lines.
func (m Minibuf) Update(content ui.Text, lines int) error {
	if m.Width() <= 0 {
		return errNoWidth
	}
	m.ed.minibuf = content
	m.ed.minibufLines = lines
	m.ed.loop.redraw(false)
	return nil
}

// Clear blanks the display and shrinks it back to one line.
func (m Minibuf) Clear() error {
	m.ed.minibuf = nil
	m.ed.minibufLines = 0
	m.ed.loop.redraw(false)
	return nil
}
