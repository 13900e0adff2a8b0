//go:build unix

package progtest

import (
	"io"

	"github.com/creack/pty"
	"github.com/luisbebop/histline/pkg/prog"
)

// RunInteractive runs a Program with a pseudo terminal as its stdin, so that
// the program sees an interactive session. The input is written to the
// terminal followed by an end-of-file character. It returns the exit code and
// output to stdout and stderr, which are pipes as in Run.
func RunInteractive(p prog.Program, input string, args ...string) (exit int, stdout, stderr string) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		panic(err)
	}
	defer ptmx.Close()
	defer tty.Close()
	// Drain the echo of the terminal.
	go io.Copy(io.Discard, ptmx)
	go io.WriteString(ptmx, input+"\x04")

	r := runWithStdin(p, append([]string{"histline"}, args...), tty)
	return r.exitCode, r.stdout.content, r.stderr.content
}
