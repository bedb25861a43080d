package term

import (
	"fmt"
	"strings"

	"github.com/liushihao456/emacs-mini-modeline/pkg/wcwidth"
)

// Cell is an indivisible unit on the screen. It is not necessarily 1 column
// wide. Face names the style to render it with; the empty face is plain
// text.
type Cell struct {
	Text string
	Face string
}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += wcwidth.Of(c.Text)
	}
	return w
}

// Returns whether two Cell slices are equal, and when they are not, the
// first index at which they differ.
func compareCells(r1, r2 []Cell) (bool, int) {
	for i, c := range r1 {
		if i >= len(r2) || c != r2[i] {
			return false, i
		}
	}
	if len(r1) < len(r2) {
		return false, len(r1)
	}
	return true, 0
}

// Buffer reflects a rectangle area in the terminal, along with a cursor
// (called a "dot" here).
//
// The Unix terminal API provides only awkward ways of querying the
// terminal, so we keep an internal reflection and do one-way
// synchronizations (Buffer -> terminal, never the other way around). This
// requires us to exactly match the terminal's idea of the width of
// characters (wcwidth) and where to insert soft carriage returns.
type Buffer struct {
	Width int
	// Lines the content of the buffer.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// Returns the position of the cursor after writing the entire buffer.
func endPos(b *Buffer) Pos {
	return Pos{len(b.Lines) - 1, cellsWidth(b.Lines[len(b.Lines)-1])}
}

// TrimToLines trims a buffer to the lines [low, high).
func (b *Buffer) TrimToLines(low, high int) {
	if low < 0 {
		low = 0
	}
	if high > len(b.Lines) {
		high = len(b.Lines)
	}
	for i := 0; i < low; i++ {
		b.Lines[i] = nil
	}
	for i := high; i < len(b.Lines); i++ {
		b.Lines[i] = nil
	}
	b.Lines = b.Lines[low:high]
	b.Dot.Line -= low
	if b.Dot.Line < 0 {
		b.Dot.Line = 0
	}
}

// Buffer returns itself. This is implemented in analogy with
// [BufferBuilder], so that places that accept either can accept an
// interface.
func (b *Buffer) Buffer() *Buffer { return b }

// TTYString returns a text representation of the buffer, using box drawing
// characters for the border and face markers of the form [face-name ...]
// for styled runs. It is only used in debug logs and test failures.
func (b *Buffer) TTYString() string {
	if b == nil {
		return "nil"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Width = %d, Dot = (%d, %d)\n", b.Width, b.Dot.Line, b.Dot.Col)
	sb.WriteString("┌" + strings.Repeat("─", b.Width) + "┐\n")
	for _, line := range b.Lines {
		sb.WriteRune('│')
		face := ""
		usedWidth := 0
		for _, cell := range line {
			if cell.Face != face {
				if face != "" {
					sb.WriteString("]")
				}
				if cell.Face != "" {
					sb.WriteString("[" + cell.Face + " ")
				}
				face = cell.Face
			}
			sb.WriteString(cell.Text)
			usedWidth += wcwidth.Of(cell.Text)
		}
		if face != "" {
			sb.WriteString("]")
		}
		if usedWidth < b.Width {
			sb.WriteString("$" + strings.Repeat(" ", b.Width-usedWidth-1))
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", b.Width) + "┘\n")
	return sb.String()
}
