package term

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestWriter(t *testing.T) {
	sb := &strings.Builder{}
	testOutput := func(want string) {
		t.Helper()
		if sb.String() != want {
			t.Errorf("got %q, want %q", sb.String(), want)
		}
		sb.Reset()
	}

	w := NewWriter(sb, nil)

	// First write: everything is new content.
	w.UpdateBuffer(
		NewBufferBuilder(10).Write("line 1", "").SetDotHere().Buffer(),
		false)
	testOutput(hideCursor + "\r" + "line 1" + "\r\033[6C" + showCursor)

	// Delta write: only the changed tail is rewritten.
	w.UpdateBuffer(
		NewBufferBuilder(10).Write("line 2", "").SetDotHere().Buffer(),
		false)
	testOutput(hideCursor + "\r" + "\033[5C\033[K" + "2" + "\r\033[6C" + showCursor)

	// Unchanged buffer: no line content is written.
	w.UpdateBuffer(
		NewBufferBuilder(10).Write("line 2", "").SetDotHere().Buffer(),
		false)
	testOutput(hideCursor + "\r" + "\r\033[6C" + showCursor)
}

func TestWriter_FullRefresh(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb, nil)
	w.UpdateBuffer(NewBufferBuilder(10).Write("abc", "").SetDotHere().Buffer(), false)
	sb.Reset()

	w.UpdateBuffer(NewBufferBuilder(10).Write("abc", "").SetDotHere().Buffer(), true)
	want := hideCursor + "\r" + " \033[J\r" + "abc" + "\r\033[3C" + showCursor
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriter_WidthChangeForcesFullRefresh(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb, nil)
	w.UpdateBuffer(NewBufferBuilder(10).Write("abc", "").SetDotHere().Buffer(), false)
	sb.Reset()

	w.UpdateBuffer(NewBufferBuilder(8).Write("abc", "").SetDotHere().Buffer(), false)
	if got := sb.String(); !strings.Contains(got, " \033[J\r") {
		t.Errorf("got %q, want a full refresh after a width change", got)
	}
}

func TestWriter_ShrinkingBufferErasesOldLines(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb, nil)
	w.UpdateBuffer(
		NewBufferBuilder(10).Write("a", "").Newline().Write("b", "").SetDotHere().Buffer(),
		false)
	sb.Reset()

	w.UpdateBuffer(NewBufferBuilder(10).Write("a", "").SetDotHere().Buffer(), false)
	if got := sb.String(); !strings.Contains(got, "\n\033[J\033[A") {
		t.Errorf("got %q, want old lines erased", got)
	}
}

func TestWriter_ResolvesFaces(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI))
	bold := r.NewStyle().Bold(true)
	styles := func(face string) lipgloss.Style {
		if face == "prompt" {
			return bold
		}
		return r.NewStyle()
	}

	sb := &strings.Builder{}
	w := NewWriter(sb, styles)
	w.UpdateBuffer(
		NewBufferBuilder(10).Write("> ", "prompt").Write("ok", "").SetDotHere().Buffer(),
		false)

	if got := sb.String(); !strings.Contains(got, bold.Render("> ")+"ok") {
		t.Errorf("got %q, want the prompt run styled and the rest plain", got)
	}
}

func TestWriter_ResetBuffer(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb, nil)
	w.UpdateBuffer(NewBufferBuilder(10).Write("abc", "").SetDotHere().Buffer(), false)
	w.ResetBuffer()
	sb.Reset()

	// After a reset the same content is written out again in full.
	w.UpdateBuffer(NewBufferBuilder(10).Write("abc", "").SetDotHere().Buffer(), false)
	if got := sb.String(); !strings.Contains(got, "abc") {
		t.Errorf("got %q, want the content written again after reset", got)
	}
}
