// Package layout fits left and right status segments, and transient
// messages, into a fixed number of terminal columns.
//
// All widths are display column widths (see the wcwidth package), so wide
// and combining characters lay out correctly.
package layout

import (
	"strings"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// Render renders a left and a right segment into a line of the given width,
// with the right segment ending rightPad columns before the right edge.
//
// When both segments fit, the result is a single line with the right
// segment right-justified. When they do not fit and truncate is true, the
// right segment is hard-cut to the remaining columns. When truncate is
// false, the right segment goes on its own line above the left segment,
// and the returned line estimate grows by ceil(leftWidth/width) to account
// for the host wrapping the left segment.
//
// The second return value is the number of extra lines the result needs
// beyond a single line; it is an estimate for wrapped wide-character
// content, not an exact count.
func Render(left, right ui.Text, width, rightPad int, truncate bool) (ui.Text, int) {
	lw := left.Width()
	rw := right.Width()
	avail := width - lw - rightPad
	if avail < 0 {
		avail = 0
	}

	if avail >= rw {
		return ui.Concat(left, spaces(avail-rw), right), 0
	}

	if truncate {
		trimmed := right.TrimWcwidth(avail)
		return ui.Concat(left, spaces(avail-trimmed.Width()), trimmed), 0
	}

	// Wrap: the right segment on its own line, the left segment below it.
	field := avail + lw
	trimmed := right.TrimWcwidth(field)
	line := ui.Concat(spaces(field-trimmed.Width()), trimmed)
	return ui.Concat(line, ui.T("\n"), left), ceilDiv(lw, width)
}

// RenderLines is the multi-line variant of Render. The left and right
// segments are split on line breaks and rendered pairwise, with missing
// lines treated as empty. The returned line estimate is the sum of the
// per-row estimates plus the number of rows.
func RenderLines(left, right ui.Text, width, rightPad int, truncate bool) (ui.Text, int) {
	leftLines := left.SplitByRune('\n')
	rightLines := right.SplitByRune('\n')
	rows := len(leftLines)
	if len(rightLines) > rows {
		rows = len(rightLines)
	}

	var content ui.Text
	extra := rows
	for i := 0; i < rows; i++ {
		var l, r ui.Text
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		row, rowExtra := Render(l, r, width, rightPad, truncate)
		if i > 0 {
			content = ui.Concat(content, ui.T("\n"), row)
		} else {
			content = row
		}
		extra += rowExtra
	}
	return content, extra
}

func spaces(n int) ui.Text {
	if n <= 0 {
		return nil
	}
	return ui.T(strings.Repeat(" ", n))
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
