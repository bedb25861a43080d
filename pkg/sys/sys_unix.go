//go:build unix

package sys

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

const sigWINCH = unix.SIGWINCH

func notifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh)
	return sigCh
}

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}

	// Fall back to a sane size when the terminal reports zero, as serial
	// consoles do.
	if ws.Col == 0 {
		ws.Col = 80
	}
	if ws.Row == 0 {
		ws.Row = 24
	}

	return int(ws.Row), int(ws.Col)
}
