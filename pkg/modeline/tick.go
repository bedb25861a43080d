package modeline

import (
	"reflect"
	"time"

	"github.com/liushihao456/emacs-mini-modeline/pkg/layout"
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// Tick runs one refresh cycle. Hosts call it from their redisplay path,
// potentially once per keystroke; recomputation is rate-limited by
// Config.UpdateInterval, so most calls return without work. With
// forceClear, the display is blanked instead.
//
// Tick never panics and never propagates errors: a failure leaves the
// cache unchanged, is logged, and the cycle is retried on the next tick.
// Nothing here may interrupt the host's redisplay.
func (c *Controller) Tick(forceClear bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("tick: recovered from %v", r)
		}
	}()

	if !c.enabled {
		return
	}
	// Never interfere with an interactive prompt.
	if h := c.spec.Host; h != nil && (h.InputPending() || h.PromptActive()) {
		return
	}

	now := c.now()
	if !forceClear && !c.lastTick.IsZero() &&
		now.Sub(c.lastTick) < c.spec.Config.UpdateInterval {
		return
	}
	c.lastTick = now

	c.pickUpMessage(now)
	c.expireMessage(now)

	if forceClear {
		if err := c.spec.Display.Clear(); err != nil {
			logger.Printf("tick: clear display: %v", err)
			return
		}
		c.state.Cache = RenderCache{}
		return
	}

	content, lines := c.render()
	c.redraw(content, lines)
}

// pickUpMessage moves a newly recorded or ambient message into the
// display state, keeping only its first line unless configured otherwise.
func (c *Controller) pickUpMessage(now time.Time) {
	msg := c.takeNewMessage()
	if msg == nil {
		return
	}
	if !c.spec.Config.WholeMessage {
		msg.Text = msg.Text.SplitByRune('\n')[0]
	}
	msg.ShownSince = now
	c.state.Message = msg
	if msg.Origin == OriginExplicit || c.state.Command == CommandBegin {
		c.state.Command = CommandExecuting
		c.suppressKeyEcho()
	}
}

func (c *Controller) takeNewMessage() *EchoMessage {
	if c.pending != nil {
		msg := c.pending
		c.pending = nil
		return msg
	}
	h := c.spec.Host
	if h == nil {
		return nil
	}
	text := h.AmbientMessage()
	s := text.String()
	if s == "" {
		c.lastAmbient = ""
		return nil
	}
	if s == c.lastAmbient {
		return nil
	}
	c.lastAmbient = s
	return &EchoMessage{Text: text, Origin: OriginAmbient}
}

// expireMessage drops the held message once it has been on display for
// EchoDuration, provided no command is in flight.
func (c *Controller) expireMessage(now time.Time) {
	msg := c.state.Message
	if msg == nil || c.state.Command.inCommand() {
		return
	}
	if now.Sub(msg.ShownSince) >= c.spec.Config.EchoDuration {
		c.state.Message = nil
	}
}

func (c *Controller) render() (ui.Text, int) {
	width := c.spec.Display.Width()
	env := c.spec.Env
	left := c.spec.Left.Eval(env)
	right := c.spec.Right.Eval(env)
	truncate := !c.spec.Config.Wrap
	if msg := c.state.Message; msg != nil {
		// Message-priority path: the message is truncated first, then the
		// left segment; the right segment keeps its width. The margin in
		// the composition replaces the right padding.
		left = layout.ComposeMessage(left, msg.Text, right, width)
		return layout.RenderLines(left, right, width, 0, truncate)
	}
	return layout.RenderLines(left, right, width, c.spec.Config.RightPadding, truncate)
}

// redraw writes content to the display, unless it matches the cache. The
// cache is only advanced after a successful write, so a failed write is
// retried on the next cycle.
func (c *Controller) redraw(content ui.Text, lines int) {
	if lines == c.state.Cache.Lines &&
		reflect.DeepEqual(content, c.state.Cache.Content) {
		return
	}
	if err := c.spec.Display.Update(content, lines); err != nil {
		logger.Printf("tick: update display: %v", err)
		return
	}
	c.state.Cache = RenderCache{Content: content, Lines: lines}
}
