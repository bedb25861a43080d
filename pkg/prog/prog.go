// Package prog provides the entry point of the minimodeline command. The
// command is composed of subprograms: each subprogram registers the flags
// it understands, and either handles an invocation or passes it on to the
// next subprogram.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram. It may return ErrNextProgram to pass the
	// invocation on to the next subprogram.
	Run(fds [3]*os.File, args []string) error
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: minimodeline [flags]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the given program. It returns the
// exit status to use for the process.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet("minimodeline", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	var log string
	var help bool
	fs.StringVar(&log, "log", "",
		"Path of file to write the debug log to")
	fs.BoolVar(&help, "help", false,
		"Show usage help and quit")
	p.RegisterFlags(&FlagSet{FlagSet: fs})

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help, but not -h; so
			// this means that -h has been requested. Handle this by
			// printing the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if log != "" {
		err = logutil.SetOutputFile(log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if err == ErrNextProgram {
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program made up of subprograms. It runs them in
// order, terminating at the first one that doesn't return ErrNextProgram.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(fs *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(fs)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, args)
		if err != ErrNextProgram {
			return err
		}
	}
	return ErrNextProgram
}

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// ErrNextProgram is a special error that may be returned by Program.Run,
// signalling that the invocation should be passed on to the next
// subprogram in a Composite.
var ErrNextProgram = errors.New("next program")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information
// and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It
// causes the main function to exit with the given code without printing
// any error messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
