package modeline

import (
	"strings"
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

func TestTick_RendersSegments(t *testing.T) {
	f := setup(t)
	f.c.Tick(false)

	want := "L" + strings.Repeat(" ", 15) + "R"
	if got := f.d.content.String(); got != want {
		t.Errorf("display = %q, want %q", got, want)
	}
	if f.d.lines != 1 {
		t.Errorf("display lines = %d, want 1", f.d.lines)
	}
}

func TestTick_CacheSuppressesDuplicateWrites(t *testing.T) {
	f := setup(t)
	f.c.Tick(false)
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)

	if f.d.updates != 1 {
		t.Errorf("display written %d times for identical content, want 1", f.d.updates)
	}
}

func TestTick_ThrottlesRecomputation(t *testing.T) {
	f := setup(t)
	f.c.Tick(false)
	f.env["left"] = "CHANGED"

	f.advance(DefaultUpdateInterval / 2)
	f.c.Tick(false)
	if got := f.d.content.String(); strings.Contains(got, "CHANGED") {
		t.Errorf("display recomputed before the update interval elapsed")
	}

	f.advance(DefaultUpdateInterval / 2)
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "CHANGED") {
		t.Errorf("display = %q, not recomputed after the update interval", got)
	}
}

func TestTick_InvalidateBypassesThrottle(t *testing.T) {
	f := setup(t)
	f.c.Tick(false)
	f.env["left"] = "CHANGED"

	f.c.Invalidate()
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "CHANGED") {
		t.Errorf("display = %q after Invalidate, want recomputed content", got)
	}
}

func TestTick_ForceClearBlanksDisplay(t *testing.T) {
	f := setup(t)
	f.c.Tick(false)

	// forceClear is not throttled.
	f.c.Tick(true)
	if f.d.clears != 1 {
		t.Errorf("display cleared %d times, want 1", f.d.clears)
	}
	if content, lines := f.c.Rendered(); content != nil || lines != 0 {
		t.Errorf("cache = (%q, %d) after forceClear, want empty", content.String(), lines)
	}

	// The content is repainted afterwards.
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if f.d.updates != 2 {
		t.Errorf("display not repainted after forceClear")
	}
}

func TestTick_ReentrancyGuard(t *testing.T) {
	f := setupWithHost(t)

	f.h.inputPending = true
	f.c.Tick(false)
	if f.d.updates != 0 {
		t.Errorf("tick ran while input was pending")
	}

	f.h.inputPending = false
	f.h.promptActive = true
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if f.d.updates != 0 {
		t.Errorf("tick ran while a prompt was active")
	}

	f.h.promptActive = false
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if f.d.updates != 1 {
		t.Errorf("tick skipped after the guard lifted")
	}
}

func TestTick_DisabledControllerDoesNothing(t *testing.T) {
	f := setup(t)
	f.c.Disable()
	clears := f.d.clears

	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if f.d.updates != 0 || f.d.clears != clears {
		t.Errorf("tick touched the display while disabled")
	}
}

func TestTick_MessageLifecycle(t *testing.T) {
	f := setup(t)
	f.c.Notify("saved")
	f.c.Tick(false)

	if got := f.d.content.String(); !strings.Contains(got, "saved") {
		t.Errorf("display = %q, want the message", got)
	}

	// The notification moved Begin to Executing, so the message survives
	// long past its duration.
	f.advance(10 * DefaultEchoDuration)
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "saved") {
		t.Errorf("message expired while a command was executing")
	}

	// Once the command ends, the overdue message goes at the next tick.
	f.c.OnCommandEnd()
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if got := f.d.content.String(); strings.Contains(got, "saved") {
		t.Errorf("display = %q, message not cleared after command end", got)
	}
}

func TestTick_MessageExpiresAtEchoDuration(t *testing.T) {
	f := setup(t)
	f.c.Notify("saved")
	f.c.Tick(false)
	f.c.OnCommandEnd()

	f.advance(DefaultEchoDuration - DefaultUpdateInterval)
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "saved") {
		t.Errorf("message expired before its duration")
	}

	// Exactly at the duration the message is overdue.
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if got := f.d.content.String(); strings.Contains(got, "saved") {
		t.Errorf("display = %q, message not expired at its duration", got)
	}
}

func TestTick_MessagePriorityPath(t *testing.T) {
	f := setup(t)
	f.d.width = 40
	f.env["left"] = "LEFT"
	f.env["right"] = strings.Repeat("R", 10)

	f.c.Notify("a very long message here")
	f.c.Tick(false)

	got := f.d.content.String()
	// The message is truncated into 40-2-10-10 = 18 columns, before and
	// independently of the left segment.
	if !strings.Contains(got, "LEFT a very long mes...") {
		t.Errorf("display = %q, want truncated message after the left segment", got)
	}
	// The right segment is never shortened.
	if !strings.HasSuffix(got, strings.Repeat("R", 10)) {
		t.Errorf("display = %q, right segment was shortened", got)
	}
}

func TestTick_MessageKeepsFirstLineOnly(t *testing.T) {
	f := setup(t)
	f.c.Notify("first\nsecond")
	f.c.Tick(false)

	got := f.d.content.String()
	if !strings.Contains(got, "first") || strings.Contains(got, "second") {
		t.Errorf("display = %q, want only the first message line", got)
	}
}

func TestTick_WholeMessageKeepsAllLines(t *testing.T) {
	f := setup(t, func(spec *Spec) { spec.Config.WholeMessage = true })
	f.d.width = 60
	f.c.Notify("first\nsecond")
	f.c.Tick(false)

	got := f.d.content.String()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("display = %q, want all message lines", got)
	}
	if f.d.lines < 2 {
		t.Errorf("display lines = %d, want at least 2", f.d.lines)
	}
}

func TestTick_AmbientMessagePickup(t *testing.T) {
	f := setupWithHost(t)
	f.c.state.Command = CommandEnd

	f.h.ambient = ui.T("C-x -")
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "C-x -") {
		t.Errorf("display = %q, want the ambient message", got)
	}
	// An ambient message outside Begin does not force Executing.
	if got := f.c.state.Command; got != CommandEnd {
		t.Errorf("command state = %v after ambient pickup, want %v", got, CommandEnd)
	}

	// Unchanged surface content is not picked up again, so the message
	// expires on schedule even while the surface still shows it.
	f.advance(DefaultEchoDuration)
	f.c.Tick(false)
	if got := f.d.content.String(); strings.Contains(got, "C-x -") {
		t.Errorf("display = %q, stale ambient content re-shown", got)
	}

	// Once the surface clears, the same text showing up again is new.
	f.h.ambient = nil
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	f.h.ambient = ui.T("C-x -")
	f.advance(DefaultUpdateInterval)
	f.c.Tick(false)
	if got := f.d.content.String(); !strings.Contains(got, "C-x -") {
		t.Errorf("display = %q, reappeared ambient content not picked up", got)
	}
}

func TestTick_ExplicitMessageBeatsAmbient(t *testing.T) {
	f := setupWithHost(t)
	f.h.ambient = ui.T("ambient")
	f.c.Notify("explicit")
	f.c.Tick(false)

	if got := f.d.content.String(); !strings.Contains(got, "explicit") {
		t.Errorf("display = %q, want the explicit message", got)
	}
}

func TestTick_WrapModeGrowsLineEstimate(t *testing.T) {
	f := setup(t, func(spec *Spec) { spec.Config.Wrap = true })
	f.env["left"] = strings.Repeat("x", 50) // display width is 20
	f.c.Tick(false)

	// ceil(50/20) = 3 wrap lines plus the right-segment row.
	if f.d.lines != 4 {
		t.Errorf("display lines = %d, want 4", f.d.lines)
	}
	if got := f.d.content.String(); !strings.Contains(got, "\n") {
		t.Errorf("display = %q, want wrapped content on two rows", got)
	}
}
