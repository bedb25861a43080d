package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/liushihao456/emacs-mini-modeline/pkg/config"
	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/modeline"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog"
	"github.com/liushihao456/emacs-mini-modeline/pkg/remote"
	"github.com/liushihao456/emacs-mini-modeline/pkg/store"
	"github.com/liushihao456/emacs-mini-modeline/pkg/sys"
	"github.com/liushihao456/emacs-mini-modeline/pkg/term"
)

// Program is the interactive editor subprogram, the default when no other
// subprogram claims the invocation. It reads lines from the terminal with
// the modeline controller enabled, writing each submitted line to stdout.
type Program struct {
	plain  bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.plain, "plain", false,
		"Run the editor with its native status row instead of the modeline")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not accepted")
	}
	if !sys.IsATTY(fds[0].Fd()) {
		return errors.New("standard input is not a terminal")
	}

	cfg, err := config.Load(*p.config)
	if err != nil {
		return err
	}
	faces := face.Default()
	if err := cfg.ApplyFaces(faces); err != nil {
		return err
	}

	var st store.Store
	if cfg.HistoryDB != "" {
		st, err = store.NewStore(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()
	}

	tty := term.NewTTY(fds[0], fds[2], faces.Get)
	ed := New(Spec{TTY: tty, Store: st})
	ctrl := modeline.New(modeline.Spec{
		Display: ed.Minibuf(),
		Host:    ed,
		Faces:   faces,
		Left:    cfg.Left,
		Right:   cfg.Right,
		Env:     ed.Env(),
		Config:  cfg.Modeline(),
	})

	if !p.plain {
		ctrl.Enable()
		defer ctrl.Disable()
	}
	defer ed.AddRedrawHook(func() { ctrl.Tick(false) })()
	defer ed.AddResizeHook(ctrl.Invalidate)()

	if cfg.Socket != "" {
		server, err := remote.Listen(cfg.Socket, remoteHandler{ed, ctrl})
		if err != nil {
			return fmt.Errorf("listen on socket: %w", err)
		}
		defer server.Close()
	}

	for {
		line, err := ed.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		fmt.Fprintln(fds[1], line)
		ed.Echo("submitted: " + line)
	}
}

// remoteHandler bridges remote requests into the editor's event loop, so
// that the controller keeps its single writer.
type remoteHandler struct {
	ed   *Editor
	ctrl *modeline.Controller
}

func (h remoteHandler) ShowMessage(text string) {
	h.ed.PostEcho(text)
}

func (h remoteHandler) Status() (string, int) {
	var content string
	var lines int
	h.ed.Call(func() {
		text, n := h.ctrl.Rendered()
		content, lines = text.String(), n
	})
	return content, lines
}

func (h remoteHandler) Clear() {
	h.ed.Call(func() { h.ctrl.Tick(true) })
}
