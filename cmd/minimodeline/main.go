// Minimodeline is a status line for line-oriented terminal programs,
// rendered into the bottom rows of the screen the way Emacs mini-modeline
// renders into the minibuffer. The default subprogram runs the builtin
// line editor with the modeline enabled; -tea runs a bubbletea host, and
// -notify/-status/-clear talk to a running instance over its socket.
package main

import (
	"os"

	"github.com/liushihao456/emacs-mini-modeline/pkg/buildinfo"
	"github.com/liushihao456/emacs-mini-modeline/pkg/editor"
	"github.com/liushihao456/emacs-mini-modeline/pkg/prog"
	"github.com/liushihao456/emacs-mini-modeline/pkg/remote"
	"github.com/liushihao456/emacs-mini-modeline/pkg/teahost"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &remote.SendProgram{},
			&teahost.Program{}, &editor.Program{})))
}
