package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/liushihao456/emacs-mini-modeline/pkg/prog"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog/progtest"
)

var (
	Test             = progtest.Test
	ThatMinimodeline = progtest.ThatMinimodeline
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		ThatMinimodeline("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatMinimodeline("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatMinimodeline("-help").
			WritesStdoutContaining("Usage: minimodeline [flags]"),
	)
}

func TestLogFlag(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")

	Test(t, testProgram{},
		ThatMinimodeline("-log", log).DoesNothing(),
	)

	if _, err := os.Stat(log); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{nextProgram: true},
		ThatMinimodeline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{nextProgram: true}, testProgram{writeOut: "program 2"}),
		ThatMinimodeline().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{nextProgram: true}, testProgram{nextProgram: true}),
		ThatMinimodeline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatMinimodeline().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatMinimodeline().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatMinimodeline().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatMinimodeline().ExitsWith(0),
	)
}

type testProgram struct {
	nextProgram bool
	writeOut    string
	returnErr   error
}

func (p testProgram) RegisterFlags(*FlagSet) {}

func (p testProgram) Run(fds [3]*os.File, args []string) error {
	if p.nextProgram {
		return ErrNextProgram
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
