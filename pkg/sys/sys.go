// Package sys provides the small system surface the terminal host needs,
// with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 256

// NotifySignals returns a channel on which all signals get delivered.
func NotifySignals() chan os.Signal { return notifySignals() }

// SIGWINCH is the window size change signal. On platforms without it, it
// is a signal that never fires.
const SIGWINCH = sigWINCH

// WinSize queries the size of the terminal referenced by the given file.
// It returns (-1, -1) if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
