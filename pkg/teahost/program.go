package teahost

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liushihao456/emacs-mini-modeline/pkg/config"
	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog"
)

// Program is the bubbletea host subprogram, selected with -tea.
type Program struct {
	tea    bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.tea, "tea", false,
		"Run the bubbletea host instead of the builtin editor")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.tea {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not accepted")
	}

	cfg, err := config.Load(*p.config)
	if err != nil {
		return err
	}
	faces := face.Default()
	if err := cfg.ApplyFaces(faces); err != nil {
		return err
	}

	logger.Println("starting bubbletea host")
	_, err = tea.NewProgram(NewModel(cfg, faces),
		tea.WithInput(fds[0]), tea.WithOutput(fds[2])).Run()
	return err
}
