package term

import (
	"os"
	"os/signal"

	"github.com/liushihao456/emacs-mini-modeline/pkg/sys"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// TTY is the terminal dependency of the editor. It unifies event reading,
// buffer writing and terminal state management behind one interface, so
// that tests can substitute a fake.
type TTY interface {
	// Setup sets up the terminal for reading keys, returning a function
	// that restores the saved terminal state.
	Setup() (restore func(), err error)
	// Size returns the height and width of the terminal.
	Size() (rows, cols int)
	// ReadEvent reads a terminal event.
	ReadEvent() (Event, error)
	// CloseReader releases resources allocated for reading events.
	CloseReader()
	// Buffer returns the last buffer written.
	Buffer() *Buffer
	// ResetBuffer resets the last written buffer, forcing the next
	// UpdateBuffer to do a full refresh.
	ResetBuffer()
	// UpdateBuffer updates the terminal display to reflect buf.
	UpdateBuffer(buf *Buffer, fullRefresh bool) error
	// ClearScreen clears the terminal screen.
	ClearScreen()
	// NotifySignals returns a channel on which signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the channel returned by NotifySignals.
	StopSignals()
}

type aTTY struct {
	in, out *os.File
	r       Reader
	w       Writer
	sigCh   chan os.Signal
}

// NewTTY returns a TTY backed by the given input and output files,
// resolving face names through styles.
func NewTTY(in, out *os.File, styles ui.StyleFunc) TTY {
	return &aTTY{in: in, out: out, w: NewWriter(out, styles)}
}

func (t *aTTY) Setup() (func(), error) {
	restore, err := setup(t.in, t.out)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := restore(); err != nil {
			logger.Printf("restore terminal: %v", err)
		}
	}, nil
}

func (t *aTTY) Size() (rows, cols int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) ReadEvent() (Event, error) {
	if t.r == nil {
		r, err := NewReader(t.in)
		if err != nil {
			return nil, err
		}
		t.r = r
	}
	return t.r.ReadEvent()
}

func (t *aTTY) CloseReader() {
	if t.r != nil {
		t.r.Close()
		t.r = nil
	}
}

func (t *aTTY) Buffer() *Buffer {
	return t.w.Buffer()
}

func (t *aTTY) ResetBuffer() {
	t.w.ResetBuffer()
}

func (t *aTTY) UpdateBuffer(buf *Buffer, fullRefresh bool) error {
	return t.w.UpdateBuffer(buf, fullRefresh)
}

func (t *aTTY) ClearScreen() {
	t.w.ClearScreen()
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
		close(t.sigCh)
		t.sigCh = nil
	}
}
