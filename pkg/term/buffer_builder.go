package term

import (
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
	"github.com/liushihao456/emacs-mini-modeline/pkg/wcwidth"
)

// ControlFace is the face used for control characters, which are written
// in caret notation.
const ControlFace = "control"

// BufferBuilder supports building of a Buffer for visualizing on the
// terminal.
type BufferBuilder struct {
	Width, Col, Indent int
	// EagerWrap controls whether to wrap the line as soon as the cursor
	// reaches the right edge of the terminal.
	EagerWrap bool
	Lines     [][]Cell
	Dot       Pos
}

// NewBufferBuilder makes a new BufferBuilder, initially with one empty
// line.
func NewBufferBuilder(width int) *BufferBuilder {
	return &BufferBuilder{Width: width, Lines: [][]Cell{make([]Cell, 0, width)}}
}

// Cursor returns the current position of the cursor.
func (bb *BufferBuilder) Cursor() Pos {
	return Pos{len(bb.Lines) - 1, bb.Col}
}

// Buffer returns the built Buffer.
func (bb *BufferBuilder) Buffer() *Buffer {
	return &Buffer{bb.Width, bb.Lines, bb.Dot}
}

// SetIndent sets the indent written after each line wrap; it returns bb
// itself.
func (bb *BufferBuilder) SetIndent(indent int) *BufferBuilder {
	bb.Indent = indent
	return bb
}

// SetEagerWrap sets whether to wrap as soon as the right edge is reached;
// it returns bb itself.
func (bb *BufferBuilder) SetEagerWrap(v bool) *BufferBuilder {
	bb.EagerWrap = v
	return bb
}

// SetDotHere sets the dot to the current cursor position; it returns bb
// itself.
func (bb *BufferBuilder) SetDotHere() *BufferBuilder {
	bb.Dot = bb.Cursor()
	return bb
}

func (bb *BufferBuilder) appendLine() {
	bb.Lines = append(bb.Lines, make([]Cell, 0, bb.Width))
	bb.Col = 0
}

func (bb *BufferBuilder) appendCell(c Cell) {
	n := len(bb.Lines)
	bb.Lines[n-1] = append(bb.Lines[n-1], c)
	bb.Col += wcwidth.Of(c.Text)
}

// Newline starts a new line, writing the indent if one is set; it returns
// bb itself.
func (bb *BufferBuilder) Newline() *BufferBuilder {
	bb.appendLine()
	for i := 0; i < bb.Indent; i++ {
		bb.appendCell(Cell{Text: " "})
	}
	return bb
}

// WriteRune writes a single rune with a face, wrapping the line when
// needed. Control characters are written in caret notation with
// ControlFace; it returns bb itself.
func (bb *BufferBuilder) WriteRune(r rune, face string) *BufferBuilder {
	if r == '\n' {
		return bb.Newline()
	}
	c := Cell{string(r), face}
	if r < 0x20 || r == 0x7f {
		c = Cell{"^" + string(r^0x40), ControlFace}
	}

	if bb.Col+wcwidth.Of(c.Text) > bb.Width {
		bb.Newline()
	}
	bb.appendCell(c)
	if bb.Col == bb.Width && bb.EagerWrap {
		bb.Newline()
	}
	return bb
}

// Write writes a string with a face, wrapping lines when needed; it
// returns bb itself.
func (bb *BufferBuilder) Write(text, face string) *BufferBuilder {
	for _, r := range text {
		bb.WriteRune(r, face)
	}
	return bb
}

// WriteText writes styled text, wrapping lines when needed; it returns bb
// itself.
func (bb *BufferBuilder) WriteText(t ui.Text) *BufferBuilder {
	for _, seg := range t {
		bb.Write(seg.Text, seg.Face)
	}
	return bb
}

// WriteSpaces writes n plain spaces; it returns bb itself.
func (bb *BufferBuilder) WriteSpaces(n int) *BufferBuilder {
	for i := 0; i < n; i++ {
		bb.WriteRune(' ', "")
	}
	return bb
}
