package term

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

var logWriterDetail = false

// Writer represents the output to a terminal.
type Writer interface {
	// Buffer returns the current buffer.
	Buffer() *Buffer
	// ResetBuffer resets the current buffer, forcing the next UpdateBuffer
	// to do a full refresh.
	ResetBuffer()
	// UpdateBuffer updates the terminal display to reflect buf.
	UpdateBuffer(buf *Buffer, fullRefresh bool) error
	// ClearScreen clears the terminal screen and places the cursor at the
	// top left corner.
	ClearScreen()
	// ShowCursor shows the cursor.
	ShowCursor()
	// HideCursor hides the cursor.
	HideCursor()
}

// writer renders Buffers into VT100 sequences, writing only the difference
// from the previously written Buffer when it can.
type writer struct {
	file   io.Writer
	styles ui.StyleFunc
	curBuf *Buffer
}

// NewWriter returns a Writer that writes VT100 sequences to f, resolving
// face names through styles. A nil styles renders everything unstyled.
func NewWriter(f io.Writer, styles ui.StyleFunc) Writer {
	return &writer{f, styles, &Buffer{}}
}

func (w *writer) Buffer() *Buffer {
	return w.curBuf
}

func (w *writer) ResetBuffer() {
	w.curBuf = &Buffer{}
}

// deltaPos calculates the escape sequence needed to move the cursor from
// one position to another. It uses relative movements to move to the
// destination line and absolute movement to move to the destination
// column.
func deltaPos(from, to Pos) []byte {
	buf := new(bytes.Buffer)
	if from.Line < to.Line {
		// move down
		fmt.Fprintf(buf, "\033[%dB", to.Line-from.Line)
	} else if from.Line > to.Line {
		// move up
		fmt.Fprintf(buf, "\033[%dA", from.Line-to.Line)
	}
	fmt.Fprint(buf, "\r")
	if to.Col > 0 {
		fmt.Fprintf(buf, "\033[%dC", to.Col)
	}
	return buf.Bytes()
}

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// UpdateBuffer updates the terminal display to reflect buf.
func (w *writer) UpdateBuffer(buf *Buffer, fullRefresh bool) error {
	if buf.Width != w.curBuf.Width && w.curBuf.Lines != nil {
		// Width change invalidates the delta; force a full refresh.
		fullRefresh = true
	}

	// Collect the entire update in a buffer so that the terminal sees it
	// in a single write.
	output := new(bytes.Buffer)

	// Hide cursor at the beginning to minimize flickering.
	output.WriteString(hideCursor)

	// Rewind cursor.
	if pLine := w.curBuf.Dot.Line; pLine > 0 {
		fmt.Fprintf(output, "\033[%dA", pLine)
	}
	output.WriteString("\r")

	if fullRefresh {
		// Erase from here. We may be in the top left corner of the screen;
		// if we simply erase here, tmux will save the current screen in
		// the scrollback buffer, presumably as a heuristic to detect
		// full-screen applications, but that is not something we want.
		//
		// To defeat tmux's heuristic, write a space, erase, and rewind.
		output.WriteString(" \033[J\r")
	}

	writeCells := func(cs []Cell) {
		var run strings.Builder
		face := ""
		flush := func() {
			if run.Len() > 0 {
				w.writeRun(output, run.String(), face)
				run.Reset()
			}
		}
		for _, c := range cs {
			if c.Face != face {
				flush()
				face = c.Face
			}
			run.WriteString(c.Text)
		}
		flush()
	}

	if logWriterDetail {
		logger.Printf("going to write %d lines, old buf had %d",
			len(buf.Lines), len(w.curBuf.Lines))
	}

	for i, line := range buf.Lines {
		if i > 0 {
			// Move cursor down one line and to the leftmost column.
			// Shorter than "\033[B\r".
			output.WriteString("\n")
		}
		if fullRefresh || i >= len(w.curBuf.Lines) {
			// An empty canvas: just write the current line.
			writeCells(line)
			continue
		}
		// Delta update below.
		eq, j := compareCells(line, w.curBuf.Lines[i])
		if eq {
			// This line hasn't changed.
			continue
		}
		// This line has changed, and j is the first differing cell. Move
		// to its corresponding column.
		if firstCol := cellsWidth(line[:j]); firstCol != 0 {
			fmt.Fprintf(output, "\033[%dC", firstCol)
		}
		// Erase the rest of the line; this is not necessary if the old
		// version of the line is a prefix of the current version.
		if j < len(w.curBuf.Lines[i]) {
			output.WriteString("\033[K")
		}
		// Now write the new content.
		writeCells(line[j:])
	}
	if !fullRefresh && len(w.curBuf.Lines) > len(buf.Lines) {
		// The old buffer is higher; erase the old content below. We cannot
		// simply write \033[J, because if the cursor is just over the last
		// column, \033[J will also erase the last column. Since the old
		// buffer is higher, the \n we write won't create a bogus new line.
		output.WriteString("\n\033[J\033[A")
	}
	cursor := endPos(buf)
	output.Write(deltaPos(cursor, buf.Dot))

	// Show cursor.
	output.WriteString(showCursor)

	if logWriterDetail {
		logger.Printf("going to write %q", output.String())
	}

	_, err := w.file.Write(output.Bytes())
	if err != nil {
		return err
	}

	w.curBuf = buf
	return nil
}

func (w *writer) writeRun(output *bytes.Buffer, text, face string) {
	if face == "" || w.styles == nil {
		output.WriteString(text)
		return
	}
	output.WriteString(w.styles(face).Render(text))
}

func (w *writer) HideCursor() {
	fmt.Fprint(w.file, hideCursor)
}

func (w *writer) ShowCursor() {
	fmt.Fprint(w.file, showCursor)
}

func (w *writer) ClearScreen() {
	fmt.Fprint(w.file,
		"\033[H",  // move cursor to the top left corner
		"\033[2J", // clear entire buffer
	)
}
