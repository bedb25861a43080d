package layout

import (
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
	"github.com/liushihao456/emacs-mini-modeline/pkg/wcwidth"
)

// Ellipsis is the default truncation indicator.
const Ellipsis = "..."

// Truncate fits t within width columns, replacing the overflowing tail with
// the default ellipsis. Truncate is idempotent: truncating an already
// truncated text again with the same width returns it unchanged.
func Truncate(t ui.Text, width int) ui.Text {
	return TruncateWith(t, width, Ellipsis)
}

// TruncateWith is Truncate with a custom ellipsis.
func TruncateWith(t ui.Text, width int, ellipsis string) ui.Text {
	if t.Width() <= width {
		return t
	}
	keep := width - wcwidth.Of(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return ui.Concat(t.TrimWcwidth(keep), ui.T(ellipsis))
}
