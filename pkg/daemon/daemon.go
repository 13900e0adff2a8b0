// Package daemon implements a service that keeps a history list shared by
// several histline sessions, and the logic to activate it.
//
// The service speaks JSON-RPC 2.0 over a UNIX socket. The methods mirror the
// operations of hist.List and are listed in the internal/api package. Lines
// added to the shared list are also recorded in a bbolt database, so that a
// restarted daemon starts with the history of the previous one.
package daemon

import (
	"os"

	"github.com/luisbebop/histline/pkg/logutil"
	"github.com/luisbebop/histline/pkg/prog"
)

var logger = logutil.GetLogger("[daemon] ")

// Program is the daemon subprogram.
type Program struct {
	run   bool
	paths *prog.DaemonPaths
	// Used in tests.
	serveOpts ServeOpts
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "daemon", false,
		"[internal flag] Run the shared history daemon instead of a session")
	p.paths = fs.DaemonPaths()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -daemon")
	}
	if p.paths.Sock == "" {
		return prog.BadUsage("-sock is required with -daemon")
	}

	// The stdout is redirected to the log file by Spawn, so just use it for
	// logging.
	logutil.SetOutput(fds[1])
	setUmaskForDaemon()
	exit := Serve(p.paths.Sock, p.paths.DB, p.serveOpts)
	return prog.Exit(exit)
}
