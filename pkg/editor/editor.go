// Package editor implements a minimal interactive line editor. It is the
// reference host for the modeline controller: it exposes the command-loop
// lifecycle, a notification primitive and a bottom "minibuffer" area that
// the controller renders into, trading its native status row for a screen
// line.
//
// The editor runs a fully serial event loop; everything that touches
// editor state happens in the loop goroutine. Producers on other
// goroutines (the terminal reader, signal delivery, remote requests) only
// feed events into the loop.
package editor

import (
	"fmt"
	"io"
	"sync"
	"syscall"

	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
	"github.com/liushihao456/emacs-mini-modeline/pkg/store"
	"github.com/liushihao456/emacs-mini-modeline/pkg/sys"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

var logger = logutil.GetLogger("[editor] ")

// Spec specifies an Editor.
type Spec struct {
	// TTY the editor reads events from and paints to. Required.
	TTY term.TTY
	// Name of the buffer, shown in the default status templates. Defaults
	// to "*scratch*".
	Name string
	// Prompt written before the input. Defaults to "> " in the prompt
	// face.
	Prompt ui.Text
	// Store provides persistent input history. A nil Store disables
	// history.
	Store store.Store
}

// State is the mutable editing state.
type State struct {
	// Code is the content of the input line.
	Code string
	// Dot is the byte position of the cursor within Code.
	Dot int
	// Modified reports whether Code has been edited since the last
	// submission.
	Modified bool
}

// Editor is an interactive line editor.
type Editor struct {
	loop *loop
	tty  term.TTY

	name   string
	prompt ui.Text
	store  store.Store

	stateMutex sync.RWMutex
	state      State

	// Hook lists fired by the command loop. Mutated only on the loop
	// goroutine (Enable/Disable of the controller run there too).
	beginHooks     hookList
	endHooks       hookList
	readInputHooks hookList
	redrawHooks    hookList
	resizeHooks    hookList

	// The notification primitive. Starts as echoNative; WrapNotify
	// replaces it.
	notify func(string) string

	statusVisible bool
	keyEcho       bool

	// Pending prefix keys, echoed while keyEcho is on.
	pending []term.Key

	// Transient note shown in the minibuffer when no one overrides the
	// notification primitive.
	note ui.Text

	// Content the modeline display was last updated with.
	minibuf      ui.Text
	minibufLines int

	hist histWalk
}

// New creates an Editor from a spec.
func New(spec Spec) *Editor {
	if spec.Name == "" {
		spec.Name = "*scratch*"
	}
	if spec.Prompt == nil {
		spec.Prompt = ui.T("> ", "prompt")
	}
	ed := &Editor{
		loop:          newLoop(),
		tty:           spec.TTY,
		name:          spec.Name,
		prompt:        spec.Prompt,
		store:         spec.Store,
		statusVisible: true,
		keyEcho:       true,
	}
	ed.notify = ed.echoNative
	ed.loop.handleCb = ed.handle
	ed.loop.redrawCb = ed.redraw
	return ed
}

// State returns a copy of the editing state.
func (ed *Editor) State() State {
	ed.stateMutex.RLock()
	defer ed.stateMutex.RUnlock()
	return ed.state
}

// MutateState mutates the editing state.
func (ed *Editor) MutateState(f func(*State)) {
	ed.stateMutex.Lock()
	defer ed.stateMutex.Unlock()
	f(&ed.state)
}

// ReadLine reads one line of input, running the event loop until it is
// submitted with Enter or aborted. It is not re-entrant.
func (ed *Editor) ReadLine() (string, error) {
	restore, err := ed.tty.Setup()
	if err != nil {
		return "", err
	}
	defer restore()

	var wg sync.WaitGroup
	defer wg.Wait()

	defer ed.tty.CloseReader()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev, err := ed.tty.ReadEvent()
			if err == nil {
				ed.loop.input(ev)
			} else if err == term.ErrStopped {
				return
			} else if term.IsReadErrorRecoverable(err) {
				logger.Println("recoverable read error:", err)
			} else {
				ed.loop.ret("", err)
				return
			}
		}
	}()

	sigCh := ed.tty.NotifySignals()
	defer ed.tty.StopSignals()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for sig := range sigCh {
			ed.loop.input(sig)
		}
	}()

	return ed.loop.run()
}

// Echo surfaces text to the user through the editor's notification
// primitive and returns the text. While the modeline controller is
// enabled the primitive is its Notify method; otherwise the text shows as
// a transient note in the minibuffer.
func (ed *Editor) Echo(text string) string {
	return ed.notify(text)
}

// PostEcho is like Echo, but safe to call from outside the loop
// goroutine: the notification is delivered as an event.
func (ed *Editor) PostEcho(text string) {
	ed.loop.input(echoRequest(text))
}

// Redraw requests a repaint of the screen.
func (ed *Editor) Redraw(full bool) {
	ed.loop.redraw(full)
}

// Return makes the event loop return with io.EOF after the current event
// is handled. It can be called from any goroutine.
func (ed *Editor) Return() {
	ed.loop.ret("", io.EOF)
}

// Call runs f on the loop goroutine and waits for it to finish. It is how
// other goroutines get a consistent view of loop-owned state. Call blocks
// until the loop gets around to the request, so it must not be used from
// the loop goroutine itself.
func (ed *Editor) Call(f func()) {
	req := callRequest{f, make(chan struct{})}
	ed.loop.input(req)
	<-req.done
}

// echoRequest is the event type carrying a PostEcho notification.
type echoRequest string

// callRequest is the event type carrying a Call invocation.
type callRequest struct {
	f    func()
	done chan struct{}
}

func (ed *Editor) echoNative(text string) string {
	ed.note = ui.T(text)
	logger.Println("echo:", text)
	ed.loop.redraw(false)
	return text
}

func (ed *Editor) handle(ev event) {
	switch ev := ev.(type) {
	case echoRequest:
		ed.Echo(string(ev))
		ed.loop.redraw(false)
	case callRequest:
		ev.f()
		close(ev.done)
	case syscall.Signal:
		ed.handleSignal(ev)
	case term.Event:
		if k, ok := ev.(term.KeyEvent); ok {
			ed.beginHooks.call()
			ed.handleKey(term.Key(k))
			ed.endHooks.call()
		}
		if !ed.loop.hasReturned() {
			ed.loop.redraw(false)
		}
	}
}

func (ed *Editor) handleSignal(sig syscall.Signal) {
	switch sig {
	case syscall.SIGHUP:
		ed.loop.ret("", io.EOF)
	case syscall.SIGINT:
		ed.cancel()
	case sys.SIGWINCH:
		ed.resizeHooks.call()
		ed.loop.redraw(true)
	}
}

// cancel aborts the pending prefix and the current input.
func (ed *Editor) cancel() {
	ed.pending = nil
	ed.note = nil
	ed.MutateState(func(s *State) { *s = State{} })
	ed.loop.redraw(false)
}

// Env returns the template environment exposing the editor state: the
// fields buffer-name, position and modified.
func (ed *Editor) Env() template.Env {
	return template.FuncEnv(func(name string) (string, bool) {
		switch name {
		case "buffer-name":
			return ed.name, true
		case "position":
			s := ed.State()
			return fmt.Sprintf("%d,%d", 1, s.Dot), true
		case "modified":
			if ed.State().Modified {
				return "*", true
			}
			return "", true
		default:
			return "", false
		}
	})
}

// AddRedrawHook registers f to run at the start of every repaint, before
// the screen content is computed. It returns a function that unregisters
// f. The modeline controller's Tick is driven from here.
func (ed *Editor) AddRedrawHook(f func()) (remove func()) {
	return ed.redrawHooks.add(f)
}

// AddResizeHook registers f to run when the terminal is resized.
func (ed *Editor) AddResizeHook(f func()) (remove func()) {
	return ed.resizeHooks.add(f)
}

// A list of hooks with removable entries. Entries are identified by the
// pointer returned from add, so the same function can be added twice.
type hookList struct {
	fns []*func()
}

func (h *hookList) add(f func()) (remove func()) {
	p := &f
	h.fns = append(h.fns, p)
	return func() {
		for i, q := range h.fns {
			if q == p {
				h.fns = append(h.fns[:i], h.fns[i+1:]...)
				return
			}
		}
	}
}

func (h *hookList) call() {
	for _, p := range h.fns {
		(*p)()
	}
}
