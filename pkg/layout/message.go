package layout

import (
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

const (
	// indicatorReserve is the fixed number of columns reserved next to the
	// right segment for a position or percentage indicator.
	indicatorReserve = 10
	// messageMargin is the breathing room kept at the right edge when a
	// message is shown.
	messageMargin = 2
)

// ComposeMessage lays a transient message over the left segment. The
// message is truncated first, against the width left over by the margin,
// the indicator reserve and the right segment; the left segment is then
// truncated into whatever remains. The right segment is never shortened.
//
// The truncation order is deliberately asymmetric: when both the left
// segment and the message are long, the message wins the space. The result
// replaces the left segment in a subsequent Render call with zero right
// padding, the margin having already taken that role.
func ComposeMessage(left, msg, right ui.Text, width int) ui.Text {
	rw := right.Width()
	msg = Truncate(msg, width-messageMargin-indicatorReserve-rw)
	left = Truncate(left, width-messageMargin-msg.Width()-rw)
	return ui.Concat(left, ui.T(" "), msg)
}
