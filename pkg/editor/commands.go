package editor

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/liushihao456/emacs-mini-modeline/pkg/store"
	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
)

// handleKey dispatches one key press as one command. It is called between
// the begin and end hooks of the command cycle.
func (ed *Editor) handleKey(k term.Key) {
	if len(ed.pending) > 0 {
		ed.handlePrefixKey(k)
		return
	}

	switch k {
	case term.K('X', term.Ctrl):
		// The command now blocks waiting for the rest of the sequence.
		ed.pending = append(ed.pending, k)
		ed.readInputHooks.call()
	case term.K(term.Enter):
		ed.submit()
	case term.K('D', term.Ctrl):
		if ed.State().Code == "" {
			ed.loop.ret("", io.EOF)
		} else {
			ed.deleteForward()
		}
	case term.K('G', term.Ctrl):
		ed.cancelKey()
	case term.K(term.Backspace), term.K('H', term.Ctrl):
		ed.deleteBackward()
	case term.K('K', term.Ctrl):
		ed.killToEnd()
	case term.K('U', term.Ctrl):
		ed.killLine()
	case term.K('A', term.Ctrl), term.K(term.Home):
		ed.moveDotStart()
	case term.K('E', term.Ctrl), term.K(term.End):
		ed.moveDotEnd()
	case term.K('B', term.Ctrl), term.K(term.Left):
		ed.moveDot(-1)
	case term.K('F', term.Ctrl), term.K(term.Right):
		ed.moveDot(1)
	case term.K('P', term.Ctrl), term.K(term.Up):
		ed.historyPrev()
	case term.K('N', term.Ctrl), term.K(term.Down):
		ed.historyNext()
	case term.K('L', term.Ctrl):
		ed.tty.ResetBuffer()
		ed.tty.ClearScreen()
		ed.loop.redraw(true)
	default:
		if k.Mod == 0 && k.Rune > 0 {
			ed.insert(k.Rune)
		} else {
			ed.Echo(k.String() + " is undefined")
		}
	}
}

// handlePrefixKey finishes a key sequence started with C-x.
func (ed *Editor) handlePrefixKey(k term.Key) {
	seq := ed.AmbientMessage().String() + k.String()
	ed.pending = nil

	switch k {
	case term.K('C', term.Ctrl):
		ed.loop.ret("", io.EOF)
	case term.K('K', term.Ctrl):
		ed.killLine()
	case term.K('='):
		s := ed.State()
		ed.Echo(seq + ": point at " + strconv.Itoa(s.Dot) + " of " + strconv.Itoa(len(s.Code)))
	case term.K('G', term.Ctrl):
		ed.Echo("Quit")
	default:
		ed.Echo(seq + " is undefined")
	}
}

func (ed *Editor) cancelKey() {
	ed.note = nil
	ed.hist = histWalk{}
	ed.Echo("Quit")
}

func (ed *Editor) insert(r rune) {
	ed.hist = histWalk{}
	ed.MutateState(func(s *State) {
		s.Code = s.Code[:s.Dot] + string(r) + s.Code[s.Dot:]
		s.Dot += utf8.RuneLen(r)
		s.Modified = true
	})
}

func (ed *Editor) deleteBackward() {
	ed.MutateState(func(s *State) {
		if s.Dot == 0 {
			return
		}
		_, n := utf8.DecodeLastRuneInString(s.Code[:s.Dot])
		s.Code = s.Code[:s.Dot-n] + s.Code[s.Dot:]
		s.Dot -= n
		s.Modified = true
	})
}

func (ed *Editor) deleteForward() {
	ed.MutateState(func(s *State) {
		if s.Dot == len(s.Code) {
			return
		}
		_, n := utf8.DecodeRuneInString(s.Code[s.Dot:])
		s.Code = s.Code[:s.Dot] + s.Code[s.Dot+n:]
		s.Modified = true
	})
}

func (ed *Editor) killToEnd() {
	ed.MutateState(func(s *State) {
		s.Code = s.Code[:s.Dot]
		s.Modified = true
	})
}

func (ed *Editor) killLine() {
	ed.MutateState(func(s *State) {
		s.Code = ""
		s.Dot = 0
		s.Modified = true
	})
}

func (ed *Editor) moveDot(by int) {
	ed.MutateState(func(s *State) {
		if by < 0 && s.Dot > 0 {
			_, n := utf8.DecodeLastRuneInString(s.Code[:s.Dot])
			s.Dot -= n
		} else if by > 0 && s.Dot < len(s.Code) {
			_, n := utf8.DecodeRuneInString(s.Code[s.Dot:])
			s.Dot += n
		}
	})
}

func (ed *Editor) moveDotStart() {
	ed.MutateState(func(s *State) { s.Dot = 0 })
}

func (ed *Editor) moveDotEnd() {
	ed.MutateState(func(s *State) { s.Dot = len(s.Code) })
}

func (ed *Editor) submit() {
	code := ed.State().Code
	if ed.store != nil && strings.TrimSpace(code) != "" {
		if _, err := ed.store.AddInput(code); err != nil {
			logger.Println("add history:", err)
		}
	}
	ed.loop.ret(code, nil)
}

// A walk through the input history. The zero value means no walk is in
// progress; the first step starts one, filtering by the code before the
// dot at that moment.
type histWalk struct {
	active bool
	prefix string
	// Sequence number of the entry currently shown.
	seq int
	// Code and dot to restore when the walk steps past the newest entry.
	savedCode string
	savedDot  int
}

func (ed *Editor) historyPrev() {
	if ed.store == nil {
		ed.Echo("History is not available")
		return
	}
	walk := ed.hist
	var upto int
	if walk.active {
		upto = walk.seq
	} else {
		s := ed.State()
		next, err := ed.store.NextInputSeq()
		if err != nil {
			logger.Println("history seq:", err)
			return
		}
		walk = histWalk{
			active: true, prefix: s.Code[:s.Dot],
			savedCode: s.Code, savedDot: s.Dot,
		}
		upto = next
	}

	entry, err := ed.store.PrevInput(upto, walk.prefix)
	if err != nil {
		if errors.Is(err, store.ErrNoMatchingInput) {
			ed.Echo("Beginning of history")
		} else {
			logger.Println("history prev:", err)
		}
		return
	}
	walk.seq = entry.Seq
	ed.hist = walk
	ed.showHistoryEntry(entry.Text)
}

func (ed *Editor) historyNext() {
	walk := ed.hist
	if !walk.active {
		ed.Echo("End of history")
		return
	}
	entry, err := ed.store.NextInput(walk.seq+1, walk.prefix)
	if err != nil {
		if errors.Is(err, store.ErrNoMatchingInput) {
			// Walked past the newest entry; restore the original input.
			ed.hist = histWalk{}
			ed.MutateState(func(s *State) {
				s.Code = walk.savedCode
				s.Dot = walk.savedDot
			})
		} else {
			logger.Println("history next:", err)
		}
		return
	}
	walk.seq = entry.Seq
	ed.hist = walk
	ed.showHistoryEntry(entry.Text)
}

func (ed *Editor) showHistoryEntry(text string) {
	ed.MutateState(func(s *State) {
		s.Code = text
		s.Dot = len(text)
	})
}
