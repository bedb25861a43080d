//go:build unix

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read, or
// until the timeout elapses. A negative timeout means no timeout. It
// returns a boolean array indicating which files are ready to be read, and
// any error from the underlying poll call.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	fds := make([]unix.PollFd, len(files))
	for i, file := range files {
		fds[i] = unix.PollFd{Fd: int32(file.Fd()), Events: unix.POLLIN}
	}
	_, err = unix.Poll(fds, pollTimeout(timeout))
	ready = make([]bool, len(files))
	for i, fd := range fds {
		ready[i] = fd.Revents&(unix.POLLIN|unix.POLLHUP) != 0
	}
	return ready, err
}

func pollTimeout(d time.Duration) int {
	if d < 0 {
		return -1
	}
	return int(d / time.Millisecond)
}
