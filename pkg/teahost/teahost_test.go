package teahost

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liushihao456/emacs-mini-modeline/pkg/config"
	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
)

func setupModel() Model {
	cfg := config.Default()
	cfg.Left = template.Nodes{
		template.Text{Text: " "},
		template.Field{Name: "buffer-name", Face: "mode-line"},
	}
	cfg.Right = template.Nodes{
		template.Field{Name: "position", Face: "shadow"},
	}
	// A negative interval makes every tick recompute.
	cfg.UpdateInterval = config.Duration(-1)
	m := NewModel(cfg, face.Default())
	return update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
}

func update(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyRunes(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		msgs = append(msgs, tea.Msg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
	return msgs
}

func TestView_ShowsStatusSegments(t *testing.T) {
	m := setupModel()

	view := m.View()
	if !strings.Contains(view, "*tea*") || !strings.Contains(view, "1,0") {
		t.Errorf("view does not show status segments:\n%s", view)
	}
}

func TestView_TracksInputPosition(t *testing.T) {
	m := setupModel()
	m = update(m, keyRunes("ab")...)
	m = update(m, tickMsg(time.Now()))

	view := m.View()
	if !strings.Contains(view, "ab") || !strings.Contains(view, "1,2") {
		t.Errorf("view does not track the input:\n%s", view)
	}
}

func TestNotify_ShowsMessageOnNextTick(t *testing.T) {
	m := setupModel()
	m.Notify("hello")
	m = update(m, tickMsg(time.Now()))

	if view := m.View(); !strings.Contains(view, "hello") {
		t.Errorf("view does not show the message:\n%s", view)
	}
}

func TestEnter_SubmitsAndResets(t *testing.T) {
	m := setupModel()
	m = update(m, keyRunes("ab")...)
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "submitted: ab") {
		t.Errorf("view does not show the submit message:\n%s", view)
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset, has %q", m.input.Value())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc},
	} {
		m := setupModel()
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("no command returned for %s", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s does not quit", key)
		}
	}
}
