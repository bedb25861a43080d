package remote

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/liushihao456/emacs-mini-modeline/pkg/config"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog"
)

const callTimeout = 5 * time.Second

// SendProgram is the subprogram that sends a request to a running editor:
// -notify surfaces a message, -status prints the rendered modeline and
// -clear blanks it.
type SendProgram struct {
	notify string
	status bool
	clear  bool
	socket string
	config *string
}

func (p *SendProgram) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.notify, "notify", "",
		"Show the given message in the modeline of a running editor and quit")
	fs.BoolVar(&p.status, "status", false,
		"Print the modeline content of a running editor and quit")
	fs.BoolVar(&p.clear, "clear", false,
		"Clear the modeline of a running editor and quit")
	fs.StringVar(&p.socket, "socket", "",
		"Path of the editor's socket; defaults to the configured one")
	p.config = fs.Config()
}

func (p *SendProgram) Run(fds [3]*os.File, args []string) error {
	if p.notify == "" && !p.status && !p.clear {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not accepted")
	}

	sockpath := p.socket
	if sockpath == "" {
		cfg, err := config.Load(*p.config)
		if err != nil {
			return err
		}
		sockpath = cfg.Socket
	}
	if sockpath == "" {
		return prog.BadUsage("no socket given with -socket or configured")
	}

	client, err := Dial(sockpath)
	if err != nil {
		return fmt.Errorf("connect to editor: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	switch {
	case p.notify != "":
		return client.ShowMessage(ctx, p.notify)
	case p.clear:
		return client.Clear(ctx)
	default:
		result, err := client.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(fds[1], result.Content)
		return nil
	}
}
