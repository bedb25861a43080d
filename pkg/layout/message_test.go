package layout

import (
	"strings"
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

func TestComposeMessage(t *testing.T) {
	width := 40
	right := ui.T("1:1 Top   ") // 10 columns
	msg := ui.T("a very long message here")
	left := ui.T("LEFT")

	got := ComposeMessage(left, msg, right, width)

	// The message is truncated first, against 40-2-10-10 = 18 columns.
	want := "LEFT a very long mes..."
	if got.String() != want {
		t.Errorf("ComposeMessage = %q, want %q", got.String(), want)
	}
}

func TestComposeMessage_LongLeftLosesToMessage(t *testing.T) {
	width := 40
	right := ui.T("1:1 Top   ")
	msg := ui.T("a very long message here")
	left := ui.T(strings.Repeat("L", 30))

	got := ComposeMessage(left, msg, right, width)

	// The message keeps its 18 columns; the left segment gets the rest.
	if !strings.HasSuffix(got.String(), "a very long mes...") {
		t.Errorf("ComposeMessage = %q, message was shortened below its budget",
			got.String())
	}
	if !strings.HasPrefix(got.String(), "LLLLLLL...") {
		t.Errorf("ComposeMessage = %q, want left truncated to %q",
			got.String(), "LLLLLLL...")
	}
}

func TestComposeMessage_RightNeverShortened(t *testing.T) {
	width := 40
	right := ui.T("1:1 Top   ")
	msg := ui.T(strings.Repeat("m", 100))
	left := ui.T(strings.Repeat("L", 100))

	composed := ComposeMessage(left, msg, right, width)
	content, extra := Render(composed, right, width, 0, true)

	if extra != 0 {
		t.Errorf("Render after ComposeMessage extra = %d, want 0", extra)
	}
	if !strings.HasSuffix(content.String(), right.String()) {
		t.Errorf("Render after ComposeMessage = %q, right segment %q was shortened",
			content.String(), right.String())
	}
}

func TestComposeMessage_ShortContentsAreKeptWhole(t *testing.T) {
	got := ComposeMessage(ui.T("LEFT"), ui.T("saved"), ui.T("50%"), 80)
	if got.String() != "LEFT saved" {
		t.Errorf("ComposeMessage = %q, want %q", got.String(), "LEFT saved")
	}
}
