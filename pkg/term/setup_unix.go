//go:build unix

package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func setup(in, out *os.File) (func() error, error) {
	// All fds pointing to the same terminal are equivalent for changing
	// termios; use the input file.
	fd := int(in.Fd())
	termios, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return nil, fmt.Errorf("get terminal attribute: %w", err)
	}

	savedTermios := *termios

	// Turn off line buffering and echo; read byte by byte without a
	// timeout. Enforce CR to NL translation so Enter always arrives as
	// \n.
	termios.Lflag &^= unix.ICANON | unix.ECHO
	termios.Iflag |= unix.ICRNL
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setTermios, termios); err != nil {
		return nil, fmt.Errorf("set terminal attribute: %w", err)
	}

	// Turn off autowrap; the writer tracks line wrapping itself.
	out.WriteString("\033[?7l")

	return func() error {
		out.WriteString("\033[?7h")
		saved := savedTermios
		if err := unix.IoctlSetTermios(fd, setTermios, &saved); err != nil {
			return fmt.Errorf("restore terminal attribute: %w", err)
		}
		return nil
	}, nil
}
