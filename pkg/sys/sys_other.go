//go:build !unix

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

// No resize signal on this platform; pick a number that never fires.
const sigWINCH = syscall.Signal(0xff)

func notifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh)
	return sigCh
}

func winSize(file *os.File) (row, col int) { return -1, -1 }
