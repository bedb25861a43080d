// Package teahost embeds the modeline controller in a bubbletea program.
// It is the second host next to the builtin line editor, and doubles as a
// demo of running the controller detached: without a Host, the controller
// only renders, and the model feeds it messages and ticks itself.
package teahost

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liushihao456/emacs-mini-modeline/pkg/config"
	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
	"github.com/liushihao456/emacs-mini-modeline/pkg/modeline"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

var logger = logutil.GetLogger("[teahost] ")

// display renders into a string consumed by View, instead of a terminal
// region. Width tracks the last WindowSizeMsg.
type display struct {
	width   int
	content ui.Text
	lines   int
}

func (d *display) Width() int { return d.width }

func (d *display) Update(content ui.Text, lines int) error {
	d.content = content
	d.lines = lines
	return nil
}

func (d *display) Clear() error {
	d.content = nil
	d.lines = 0
	return nil
}

// bufState is the part of the model the template environment reads. It is
// shared by pointer because bubbletea passes models by value.
type bufState struct {
	name     string
	pos      int
	modified bool
}

// Model is a bubbletea model with a text input on top and the modeline at
// the bottom.
type Model struct {
	input textinput.Model
	ctrl  *modeline.Controller
	disp  *display
	buf   *bufState
	faces *face.Registry

	interval time.Duration
}

// NewModel creates a Model from a configuration.
func NewModel(cfg config.Config, faces *face.Registry) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	disp := &display{width: 80}
	buf := &bufState{name: "*tea*"}
	ctrl := modeline.New(modeline.Spec{
		Display: disp,
		Faces:   faces,
		Left:    cfg.Left,
		Right:   cfg.Right,
		Env:     bufEnv(buf),
		Config:  cfg.Modeline(),
	})
	ctrl.Enable()

	interval := time.Duration(cfg.UpdateInterval)
	if interval <= 0 {
		interval = modeline.DefaultUpdateInterval
	}
	return Model{
		input: input, ctrl: ctrl, disp: disp, buf: buf,
		faces: faces, interval: interval,
	}
}

func bufEnv(buf *bufState) template.Env {
	return template.FuncEnv(func(name string) (string, bool) {
		switch name {
		case "buffer-name":
			return buf.name, true
		case "position":
			return "1," + strconv.Itoa(buf.pos), true
		case "modified":
			if buf.modified {
				return "*", true
			}
			return "", true
		default:
			return "", false
		}
	})
}

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.disp.width = msg.Width
		m.input.Width = msg.Width
		m.ctrl.Invalidate()
		m.ctrl.Tick(false)
		return m, nil
	case tickMsg:
		m.ctrl.Tick(false)
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.Reset()
			m.buf.modified = false
			m.buf.pos = 0
			if line != "" {
				m.ctrl.Notify("submitted: " + line)
			}
			m.ctrl.Tick(false)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.buf.pos = m.input.Position()
	m.buf.modified = m.input.Value() != ""
	return m, cmd
}

func (m Model) View() string {
	return m.input.View() + "\n" + m.disp.content.Render(m.faces.Get)
}

// Notify records a message on the modeline, shown on the next tick.
func (m Model) Notify(text string) { m.ctrl.Notify(text) }
