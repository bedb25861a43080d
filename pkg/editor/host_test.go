package editor

import (
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/editor/edtest"
	"github.com/liushihao456/emacs-mini-modeline/pkg/modeline"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
)

// Starts an editor with an enabled modeline controller driven from the
// redraw hook, the way the main program wires the two together. The
// update interval is negative so that every tick recomputes.
func setupModeline(t *testing.T) (*fixture, *modeline.Controller) {
	t.Helper()
	tty, ttyCtrl := edtest.NewFakeTTY()
	ed := New(Spec{TTY: tty})
	ctrl := modeline.New(modeline.Spec{
		Display: ed.Minibuf(),
		Host:    ed,
		Env:     ed.Env(),
		Left: template.Nodes{
			template.Text{Text: " "},
			template.Field{Name: "buffer-name", Face: "mode-line"},
		},
		Right: template.Nodes{
			template.Field{Name: "position", Face: "shadow"},
		},
		Config: modeline.Config{UpdateInterval: -1},
	})
	ctrl.Enable()
	ed.AddRedrawHook(func() { ctrl.Tick(false) })
	ed.AddResizeHook(ctrl.Invalidate)
	return startEditor(t, ed, ttyCtrl), ctrl
}

func TestModeline_ReplacesStatusRow(t *testing.T) {
	f, _ := setupModeline(t)

	// The native status row is gone; the bottom row carries the rendered
	// status segments, with the default right padding of three columns.
	f.TTY.TestBuffer(t, term.NewBufferBuilder(edtest.FakeTTYWidth).
		Write("> ", "prompt").SetDotHere().
		Newline().
		Write(" ", "").Write("*scratch*", "mode-line").
		WriteSpaces(34).Write("1,0", "shadow").
		Buffer())
}

func TestModeline_TracksEditingState(t *testing.T) {
	f, _ := setupModeline(t)
	f.TTY.InjectText("ab")

	f.TTY.TestBuffer(t, term.NewBufferBuilder(edtest.FakeTTYWidth).
		Write("> ", "prompt").Write("ab", "").SetDotHere().
		Newline().
		Write(" ", "").Write("*scratch*", "mode-line").
		WriteSpaces(34).Write("1,2", "shadow").
		Buffer())
}

func TestModeline_ShowsNotification(t *testing.T) {
	f, _ := setupModeline(t)
	f.Editor.PostEcho("hi")

	// The message overlays the left segment; the right segment keeps its
	// place, with the padding given up to the message margin.
	f.TTY.TestBuffer(t, term.NewBufferBuilder(edtest.FakeTTYWidth).
		Write("> ", "prompt").SetDotHere().
		Newline().
		Write(" ", "").Write("*scratch*", "mode-line").
		Write(" ", "").Write("hi", "").
		WriteSpaces(34).Write("1,0", "shadow").
		Buffer())
}

func TestModeline_EchoesPendingKeys(t *testing.T) {
	f, _ := setupModeline(t)
	f.TTY.InjectKeys(term.K('X', term.Ctrl))

	f.TTY.TestBuffer(t, term.NewBufferBuilder(edtest.FakeTTYWidth).
		Write("> ", "prompt").SetDotHere().
		Newline().
		Write(" ", "").Write("*scratch*", "mode-line").
		Write(" ", "").Write("Ctrl-X-", "").
		WriteSpaces(29).Write("1,0", "shadow").
		Buffer())
}

func TestModeline_DisableRestoresStatusRow(t *testing.T) {
	f, ctrl := setupModeline(t)
	f.Editor.Call(ctrl.Disable)

	f.TTY.TestBuffer(t, term.NewBufferBuilder(edtest.FakeTTYWidth).
		Write("> ", "prompt").SetDotHere().
		Newline().
		Write(" ", "").Write("*scratch*", "mode-line").
		WriteSpaces(36).Write("1,0", "shadow").
		Newline().
		Buffer())
}
