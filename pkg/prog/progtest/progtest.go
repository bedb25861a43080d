// Package progtest provides utilities for testing subprograms.
//
// A test case is built by [ThatMinimodeline] and methods on [Case], and
// run with [Test]:
//
//	Test(t, someProgram,
//		ThatMinimodeline("-flag").WritesStdout("legal output\n"),
//		ThatMinimodeline("-bad-flag").ExitsWith(2))
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/liushihao456/emacs-mini-modeline/pkg/must"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog"
)

// Case is a test case for a subprogram.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

// ThatMinimodeline returns a new Case with the given command-line
// arguments.
func ThatMinimodeline(args ...string) Case {
	return Case{args: append([]string{"minimodeline"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to the
// program's standard input.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// assert nothing.
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given status.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program to
// produce exactly the given text on its standard output.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the
// program's standard output to contain the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to
// produce exactly the given text on its standard error.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the
// program's standard error to contain the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args[1:], " "), func(t *testing.T) {
			t.Helper()
			testOne(t, p, c)
		})
	}
}

func testOne(t *testing.T, p prog.Program, c Case) {
	t.Helper()
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	if c.stdin != "" {
		_, err := w0.WriteString(c.stdin)
		must.OK(err)
	}
	must.OK(w0.Close())

	exit := prog.Run([3]*os.File{r0, w1, w2}, c.args, p)

	must.OK(w1.Close())
	must.OK(w2.Close())
	stdout := string(must.OK1(io.ReadAll(r1)))
	stderr := string(must.OK1(io.ReadAll(r2)))
	must.OK(r0.Close())
	must.OK(r1.Close())
	must.OK(r2.Close())

	if exit != c.want.exit {
		t.Errorf("got exit %d, want %d", exit, c.want.exit)
	}
	checkOutput(t, "stdout", stdout, c.want.stdout)
	checkOutput(t, "stderr", stderr, c.want.stderr)
}

func checkOutput(t *testing.T, name, got string, want output) {
	t.Helper()
	if want.partial {
		if !strings.Contains(got, want.content) {
			t.Errorf("got %s %q, want text containing %q", name, got, want.content)
		}
	} else if got != want.content {
		t.Errorf("got %s %q, want %q", name, got, want.content)
	}
}
