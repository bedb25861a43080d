package editor

import (
	"strconv"

	"github.com/liushihao456/emacs-mini-modeline/pkg/layout"
	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// redraw is the loop's redraw callback. It computes the screen content
// from the current state and hands it to the terminal writer, which only
// paints the lines that changed.
func (ed *Editor) redraw(flag redrawFlag) {
	if flag&finalRedraw == 0 {
		ed.redrawHooks.call()
	}
	height, width := ed.tty.Size()
	if width <= 0 {
		return
	}

	if flag&finalRedraw != 0 {
		// Leave only the input line in the scrollback, with the cursor on
		// a fresh line below it.
		buf := ed.renderInput(width).Buffer()
		buf.Lines = append(buf.Lines, nil)
		buf.Dot = term.Pos{Line: len(buf.Lines) - 1, Col: 0}
		if err := ed.tty.UpdateBuffer(buf, flag&fullRedraw != 0); err != nil {
			logger.Println("final redraw:", err)
		}
		ed.tty.ResetBuffer()
		return
	}

	buf := ed.render(width, height)
	if err := ed.tty.UpdateBuffer(buf, flag&fullRedraw != 0); err != nil {
		logger.Println("redraw:", err)
	}
}

// render builds the full screen buffer: the input row, the native status
// row when it is visible, and the minibuffer rows.
func (ed *Editor) render(width, height int) *term.Buffer {
	bb := ed.renderInput(width)

	if ed.statusVisible {
		row, _ := layout.Render(ed.statusLeft(), ed.statusRight(), width, 1, true)
		bb.Newline()
		bb.WriteText(row)
	}

	for _, line := range ed.minibufContent().SplitByRune('\n') {
		bb.Newline()
		bb.WriteText(line)
	}

	buf := bb.Buffer()
	if len(buf.Lines) > height && height > 0 {
		buf.TrimToLines(len(buf.Lines)-height, len(buf.Lines))
	}
	return buf
}

// renderInput builds the input row: prompt, code and cursor.
func (ed *Editor) renderInput(width int) *term.BufferBuilder {
	s := ed.State()
	bb := term.NewBufferBuilder(width)
	bb.WriteText(ed.prompt)
	bb.Write(s.Code[:s.Dot], "")
	bb.SetDotHere()
	bb.Write(s.Code[s.Dot:], "")
	return bb
}

// The editor's native status segments, shown when the modeline controller
// has not taken the row over.
func (ed *Editor) statusLeft() ui.Text {
	s := ed.State()
	left := ui.Concat(ui.T(" "), ui.T(ed.name, "mode-line"))
	if s.Modified {
		left = ui.Concat(left, ui.T(" *", "warning"))
	}
	return left
}

func (ed *Editor) statusRight() ui.Text {
	s := ed.State()
	return ui.T("1,"+strconv.Itoa(s.Dot), "shadow")
}

// minibufContent returns what the bottom rows should show: the modeline
// display content when the controller has written any, otherwise the
// native transient note.
func (ed *Editor) minibufContent() ui.Text {
	if ed.minibufLines > 0 {
		return ed.minibuf
	}
	return ed.note
}
