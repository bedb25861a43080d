// Package edtest provides a fake terminal for testing the editor and the
// modeline controller against it.
package edtest

import (
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
	"github.com/liushihao456/emacs-mini-modeline/pkg/testutil"
)

const (
	// Maximum number of buffer updates the fake TTY records.
	fakeTTYBufferUpdates = 4096
	// Maximum number of events and signals the fake TTY buffers.
	fakeTTYEvents  = 4096
	fakeTTYSignals = 4096
)

// Initial size of the fake TTY.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
)

type fakeTTY struct {
	setup func() (func(), error)
	// Channel returned by ReadEvent. Can be used to inject events.
	eventCh chan term.Event
	// Whether eventCh has been closed.
	eventChClosed bool
	// Mutex for synchronizing writing and closing eventCh.
	eventChMutex sync.Mutex
	// Channel for publishing buffer updates.
	bufCh chan *term.Buffer
	// Records history of buffers.
	bufs []*term.Buffer
	// Mutex for guarding bufs.
	bufMutex sync.RWMutex
	// Channel that NotifySignals returns. Can be used to inject signals.
	sigCh chan os.Signal
	// Number of times the screen has been cleared.
	cleared int

	sizeMutex     sync.RWMutex
	height, width int
}

// NewFakeTTY creates a new fake TTY and a handle for controlling it.
func NewFakeTTY() (term.TTY, TTYCtrl) {
	tty := &fakeTTY{
		eventCh: make(chan term.Event, fakeTTYEvents),
		sigCh:   make(chan os.Signal, fakeTTYSignals),
		bufCh:   make(chan *term.Buffer, fakeTTYBufferUpdates),
		height:  FakeTTYHeight, width: FakeTTYWidth,
	}
	return tty, TTYCtrl{tty}
}

// Delegates to the setup function specified with SetSetup, or returns a
// nop restore function and a nil error.
func (t *fakeTTY) Setup() (func(), error) {
	if t.setup == nil {
		return func() {}, nil
	}
	return t.setup()
}

func (t *fakeTTY) Size() (h, w int) {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.height, t.width
}

// Returns the next event from eventCh, or term.ErrStopped after it is
// closed.
func (t *fakeTTY) ReadEvent() (term.Event, error) {
	ev, ok := <-t.eventCh
	if !ok {
		return nil, term.ErrStopped
	}
	return ev, nil
}

func (t *fakeTTY) CloseReader() {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if !t.eventChClosed {
		close(t.eventCh)
		t.eventChClosed = true
	}
}

func (t *fakeTTY) Buffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.bufs) == 0 {
		return nil
	}
	return t.bufs[len(t.bufs)-1]
}

func (t *fakeTTY) ResetBuffer() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordBuf(nil)
}

func (t *fakeTTY) UpdateBuffer(buf *term.Buffer, _ bool) error {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordBuf(buf)
	return nil
}

func (t *fakeTTY) ClearScreen() {
	t.cleared++
}

func (t *fakeTTY) NotifySignals() <-chan os.Signal { return t.sigCh }

func (t *fakeTTY) StopSignals() { close(t.sigCh) }

func (t *fakeTTY) recordBuf(buf *term.Buffer) {
	t.bufs = append(t.bufs, buf)
	t.bufCh <- buf
}

// TTYCtrl is a handle for controlling a fake TTY.
type TTYCtrl struct{ *fakeTTY }

// SetSetup sets the return values of the Setup method of the fake TTY.
func (t TTYCtrl) SetSetup(restore func(), err error) {
	t.setup = func() (func(), error) {
		return restore, err
	}
}

// SetSize sets the size of the fake TTY.
func (t TTYCtrl) SetSize(h, w int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.height, t.width = h, w
}

// Inject injects events to the fake TTY.
func (t TTYCtrl) Inject(events ...term.Event) {
	for _, event := range events {
		t.inject(event)
	}
}

// InjectKeys injects key presses to the fake TTY.
func (t TTYCtrl) InjectKeys(keys ...term.Key) {
	for _, k := range keys {
		t.inject(term.KeyEvent(k))
	}
}

// InjectText injects every rune of the given text as a key press.
func (t TTYCtrl) InjectText(text string) {
	for _, r := range text {
		t.inject(term.KE(r))
	}
}

func (t TTYCtrl) inject(event term.Event) {
	t.eventChMutex.Lock()
	defer t.eventChMutex.Unlock()
	if !t.eventChClosed {
		t.eventCh <- event
	}
}

// InjectSignal injects signals.
func (t TTYCtrl) InjectSignal(sigs ...os.Signal) {
	for _, sig := range sigs {
		t.sigCh <- sig
	}
}

// ScreenCleared returns the number of times the screen has been cleared.
func (t TTYCtrl) ScreenCleared() int {
	return t.cleared
}

// BufferHistory returns a slice of all buffers that have appeared.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.bufs
}

// LastBuffer returns the last buffer that has appeared.
func (t TTYCtrl) LastBuffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.bufs) == 0 {
		return nil
	}
	return t.bufs[len(t.bufs)-1]
}

// TestBuffer verifies that a buffer will appear within 100ms, and aborts
// the test if it doesn't.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	if !testBuffer(b, t.bufCh) {
		tt.Logf("wanted buffer not shown:\n%s", b.TTYString())
		tt.Logf("last buffer:\n%s", t.LastBuffer().TTYString())
		tt.FailNow()
	}
}

// Tests that a buffer appears on the channel within 100ms.
func testBuffer(want *term.Buffer, ch <-chan *term.Buffer) bool {
	timeout := time.After(testutil.Scaled(100 * time.Millisecond))
	for {
		select {
		case buf := <-ch:
			if reflect.DeepEqual(buf, want) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}
