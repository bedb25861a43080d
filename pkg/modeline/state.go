package modeline

import (
	"time"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// CommandState tracks where the host is in its interactive command loop.
// Transitions are strictly ordered per command cycle:
// Begin → (Executing | ReadingInput)* → End → Begin …
type CommandState int

const (
	// CommandBegin is set when a command cycle starts.
	CommandBegin CommandState = iota
	// CommandExecuting is set while a command is producing output; messages
	// shown in this state are not expired.
	CommandExecuting
	// CommandReadingInput is set while a command blocks waiting for more
	// keys; messages shown in this state are not expired either.
	CommandReadingInput
	// CommandEnd is set when the command cycle finishes.
	CommandEnd
)

func (s CommandState) String() string {
	switch s {
	case CommandBegin:
		return "begin"
	case CommandExecuting:
		return "executing"
	case CommandReadingInput:
		return "reading-input"
	case CommandEnd:
		return "end"
	default:
		return "invalid"
	}
}

// inCommand reports whether a command is in flight, which blocks message
// expiry.
func (s CommandState) inCommand() bool {
	return s == CommandExecuting || s == CommandReadingInput
}

// MessageOrigin tells a message recorded through the notification primitive
// apart from one picked up from the host's transient message surface.
type MessageOrigin int

const (
	// OriginAmbient marks messages picked up from the host's transient
	// message surface, like the keystroke echo.
	OriginAmbient MessageOrigin = iota
	// OriginExplicit marks messages recorded by an explicit notification
	// call.
	OriginExplicit
)

func (o MessageOrigin) String() string {
	if o == OriginExplicit {
		return "explicit"
	}
	return "ambient"
}

// EchoMessage is a transient message overlaid on the status content until
// it expires.
type EchoMessage struct {
	Text       ui.Text
	ShownSince time.Time
	Origin     MessageOrigin
}

// RenderCache holds the last successfully written display content and its
// line count. It suppresses redundant display writes and drives window
// height changes.
type RenderCache struct {
	Content ui.Text
	Lines   int
}

// DisplayState is the mutable state of the modeline. It is owned by a
// Controller; there are no package-level globals.
type DisplayState struct {
	Command CommandState
	Message *EchoMessage
	Cache   RenderCache
}
