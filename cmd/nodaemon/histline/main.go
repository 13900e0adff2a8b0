// Command histline is an alternative main program of histline that does not
// include the daemon subprogram.
package main

import (
	"os"

	"github.com/luisbebop/histline/pkg/buildinfo"
	"github.com/luisbebop/histline/pkg/prog"
	"github.com/luisbebop/histline/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &shell.Program{})))
}
