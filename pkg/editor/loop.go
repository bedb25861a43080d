package editor

import "sync"

// Buffer size of the input channel. The value is chosen for no particular
// reason.
const inputChSize = 128

// A serial event loop. All handling and redrawing happens in the goroutine
// that calls run, so callbacks may manipulate shared state without
// synchronization; producers feed events and redraw requests from any
// goroutine.
type loop struct {
	inputCh  chan event
	handleCb func(event)
	redrawCb func(flag redrawFlag)

	redrawCh    chan struct{}
	redrawFull  bool
	redrawMutex sync.Mutex

	returnCh chan loopReturn
}

// A placeholder type for events; the loop moves them around without
// looking inside.
type event any

type loopReturn struct {
	line string
	err  error
}

// Flags to the redraw callback.
type redrawFlag uint

const (
	// fullRedraw signals that the redraw should not rely on the previously
	// written content, for example after a resize.
	fullRedraw redrawFlag = 1 << iota
	// finalRedraw signals the last redraw of a run, which leaves the final
	// content in the terminal scrollback.
	finalRedraw
)

func newLoop() *loop {
	return &loop{
		inputCh:  make(chan event, inputChSize),
		handleCb: func(event) {},
		redrawCb: func(redrawFlag) {},

		redrawCh: make(chan struct{}, 1),
		returnCh: make(chan loopReturn, 1),
	}
}

// redraw requests a redraw; requests are coalesced. It never blocks.
func (lp *loop) redraw(full bool) {
	lp.redrawMutex.Lock()
	defer lp.redrawMutex.Unlock()
	if full {
		lp.redrawFull = true
	}
	select {
	case lp.redrawCh <- struct{}{}:
	default:
	}
}

// input feeds an event into the loop. It may block if the event buffer is
// full.
func (lp *loop) input(ev event) {
	lp.inputCh <- ev
}

// inputPending reports whether there are events the loop has not consumed
// yet.
func (lp *loop) inputPending() bool {
	return len(lp.inputCh) > 0
}

// ret requests the loop to return. Only the first call per run has an
// effect. It never blocks.
func (lp *loop) ret(line string, err error) {
	select {
	case lp.returnCh <- loopReturn{line, err}:
	default:
	}
}

// hasReturned reports whether ret has been called during the current run.
func (lp *loop) hasReturned() bool {
	return len(lp.returnCh) == 1
}

// run runs the loop until ret is called. Events already buffered are all
// consumed before the next redraw, minimizing redraws when input arrives
// faster than it can be painted.
func (lp *loop) run() (line string, err error) {
	for {
		var flag redrawFlag
		if lp.extractRedrawFull() {
			flag |= fullRedraw
		}
		lp.redrawCb(flag)
		select {
		case ev := <-lp.inputCh:
		consumeAllEvents:
			for {
				lp.handleCb(ev)
				select {
				case ret := <-lp.returnCh:
					lp.redrawCb(finalRedraw)
					return ret.line, ret.err
				default:
				}
				select {
				case ev = <-lp.inputCh:
					// Continue consuming buffered events.
				default:
					break consumeAllEvents
				}
			}
		case ret := <-lp.returnCh:
			lp.redrawCb(finalRedraw)
			return ret.line, ret.err
		case <-lp.redrawCh:
		}
	}
}

func (lp *loop) extractRedrawFull() bool {
	lp.redrawMutex.Lock()
	defer lp.redrawMutex.Unlock()
	full := lp.redrawFull
	lp.redrawFull = false
	return full
}
