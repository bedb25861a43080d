// Package modeline implements a status line that lives in the bottom rows
// of its host instead of a dedicated status row, reclaiming a screen line.
//
// A Controller owns the display state: the left and right status segments
// rendered from templates, a transient echo message overlaid on them, and
// a cache of the last written content. The host drives the controller from
// its command loop (lifecycle hooks, notifications) and its redisplay
// cycle (Tick).
package modeline

import (
	"time"

	"github.com/liushihao456/emacs-mini-modeline/pkg/advice"
	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

var logger = logutil.GetLogger("[modeline] ")

// Default configuration values.
const (
	DefaultEchoDuration   = 2 * time.Second
	DefaultUpdateInterval = 100 * time.Millisecond
	DefaultRightPadding   = 3
)

// Config holds the tunable behavior of a Controller.
type Config struct {
	// EchoDuration is how long a message stays on display once no command
	// is in flight. If 0, it defaults to DefaultEchoDuration.
	EchoDuration time.Duration
	// UpdateInterval rate-limits content recomputation: a tick arriving
	// earlier than this after the previous recompute leaves the display
	// untouched. If 0, it defaults to DefaultUpdateInterval.
	UpdateInterval time.Duration
	// RightPadding is the number of columns left blank after the right
	// segment. If 0, it defaults to DefaultRightPadding; negative values
	// mean no padding.
	RightPadding int
	// Wrap renders overlong content on extra lines instead of truncating
	// it.
	Wrap bool
	// WholeMessage shows all lines of a multi-line message instead of just
	// the first.
	WholeMessage bool
}

func (c Config) withDefaults() Config {
	if c.EchoDuration == 0 {
		c.EchoDuration = DefaultEchoDuration
	}
	if c.UpdateInterval == 0 {
		c.UpdateInterval = DefaultUpdateInterval
	}
	if c.RightPadding == 0 {
		c.RightPadding = DefaultRightPadding
	} else if c.RightPadding < 0 {
		c.RightPadding = 0
	}
	return c
}

// Spec specifies a Controller. Display is the only required field.
type Spec struct {
	// Display the controller renders into.
	Display Display
	// Host the controller installs itself into on Enable. If nil, the
	// controller runs detached: Enable and Disable only toggle rendering,
	// and the host-coupled behavior (hooks, notification wrapping, status
	// line hiding) does not apply.
	Host Host
	// Faces resolve the styles of rendered content, and receive the
	// status-line face swap while enabled. If nil, face.Default() is used.
	Faces *face.Registry
	// Left and Right are the status segment templates.
	Left, Right template.Nodes
	// Env supplies the template field values. If nil, all fields are
	// missing.
	Env template.Env
	// Config tunes timing and layout.
	Config Config
}

// Controller renders a status line into a Display and reacts to the
// command loop of a Host. Its methods must be called from the host's
// event loop; the controller itself never spawns goroutines.
type Controller struct {
	spec    Spec
	enabled bool

	state       DisplayState
	pending     *EchoMessage
	lastAmbient string
	lastTick    time.Time

	keyEchoBaseline bool
	table           *advice.Table

	now func() time.Time
}

// New creates a Controller from a spec.
func New(spec Spec) *Controller {
	spec.Config = spec.Config.withDefaults()
	if spec.Faces == nil {
		spec.Faces = face.Default()
	}
	if spec.Env == nil {
		spec.Env = template.MapEnv(nil)
	}
	return &Controller{spec: spec, table: advice.NewTable(), now: time.Now}
}

// Enabled reports whether the controller is enabled.
func (c *Controller) Enabled() bool { return c.enabled }

// State returns a snapshot of the display state.
func (c *Controller) State() DisplayState {
	state := c.state
	if state.Message != nil {
		msg := *state.Message
		state.Message = &msg
	}
	return state
}

// Rendered returns the content of the last successful display write and
// its line count.
func (c *Controller) Rendered() (ui.Text, int) {
	return c.state.Cache.Content, c.state.Cache.Lines
}

// Enable installs the controller into its host: command-loop hooks, the
// notification wrap, the status line swap. Enabling an enabled controller
// is a no-op.
func (c *Controller) Enable() {
	if c.enabled {
		return
	}
	c.enabled = true
	h := c.spec.Host
	if h == nil {
		return
	}
	c.table.Install("command-hooks", func() func() {
		removeBegin := h.AddBeginHook(c.OnCommandBegin)
		removeEnd := h.AddEndHook(c.OnCommandEnd)
		removeRead := h.AddReadInputHook(c.OnReadInputBegin)
		return func() {
			removeRead()
			removeEnd()
			removeBegin()
		}
	})
	c.table.Install("notify", func() func() {
		return h.WrapNotify(func(NotifyFunc) NotifyFunc {
			// The original primitive is bypassed: the modeline display is
			// now the notification surface. Disable restores it.
			return c.Notify
		})
	})
	c.table.Install("key-echo", func() func() {
		c.keyEchoBaseline = h.KeyEcho()
		return func() { h.SetKeyEcho(c.keyEchoBaseline) }
	})
	c.table.Install("status-line", func() func() {
		h.SetStatusVisible(false)
		snap := c.spec.Faces.Save("mode-line")
		c.spec.Faces.Set("mode-line", c.spec.Faces.Get("mode-line-hidden"))
		return func() {
			snap.Restore()
			h.SetStatusVisible(true)
		}
	})
	logger.Println("enabled")
}

// Disable withdraws everything Enable installed, restores the saved host
// state and clears the display. Disabling a disabled controller is a
// no-op.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.enabled = false
	c.table.UninstallAll()
	c.state = DisplayState{}
	c.pending = nil
	c.lastAmbient = ""
	c.lastTick = time.Time{}
	if err := c.spec.Display.Clear(); err != nil {
		logger.Printf("clear display: %v", err)
	}
	logger.Println("disabled")
}

// OnCommandBegin records the start of a command cycle.
func (c *Controller) OnCommandBegin() {
	c.state.Command = CommandBegin
}

// OnCommandEnd records the end of a command cycle and restores the
// keystroke echo to its baseline.
func (c *Controller) OnCommandEnd() {
	c.state.Command = CommandEnd
	if h := c.spec.Host; h != nil && c.enabled {
		h.SetKeyEcho(c.keyEchoBaseline)
	}
}

// OnReadInputBegin records that the current command is about to block
// reading input.
func (c *Controller) OnReadInputBegin() {
	c.state.Command = CommandReadingInput
}

// Notify records text as an explicit message to show on the next tick and
// returns it unchanged, so it can stand in for the host's notification
// primitive.
func (c *Controller) Notify(text string) string {
	c.PostMessage(ui.T(text), OriginExplicit)
	return text
}

// PostMessage records a styled message with the given origin to show on
// the next tick. A later message replaces an earlier one that has not
// been shown yet.
func (c *Controller) PostMessage(text ui.Text, origin MessageOrigin) {
	logger.Printf("message: %s", text.String())
	c.pending = &EchoMessage{Text: text, Origin: origin}
	if origin == OriginExplicit && c.state.Command == CommandBegin {
		c.state.Command = CommandExecuting
		c.suppressKeyEcho()
	}
}

func (c *Controller) suppressKeyEcho() {
	if h := c.spec.Host; h != nil && c.enabled {
		h.SetKeyEcho(false)
	}
}

// Invalidate makes the next Tick recompute regardless of how recently the
// previous recompute ran. Hosts call this when the display geometry
// changes.
func (c *Controller) Invalidate() {
	c.lastTick = time.Time{}
}
