// Histline is a line-oriented front end to a command-line history engine. It
// reads lines, performs history expansion on them and keeps them in a history
// list that can be saved to a file, recorded in a database, or shared with
// other sessions through a daemon.
package main

import (
	"os"

	"github.com/luisbebop/histline/pkg/buildinfo"
	"github.com/luisbebop/histline/pkg/daemon"
	"github.com/luisbebop/histline/pkg/prog"
	"github.com/luisbebop/histline/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &daemon.Program{},
			&shell.Program{ActivateDaemon: daemon.Activate})))
}
