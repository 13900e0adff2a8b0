// Package shell is the line-oriented front end of histline.
//
// It reads lines from a terminal, a pipe or a file, runs each through history
// expansion and records it in the history. Lines are not executed: a line is
// echoed after expansion, unless it is the history builtin, which is run.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
	"github.com/luisbebop/histline/pkg/fsutil"
	"github.com/luisbebop/histline/pkg/logutil"
	"github.com/luisbebop/histline/pkg/prog"
	"github.com/luisbebop/histline/pkg/rc"
	"github.com/luisbebop/histline/pkg/session"
	"github.com/luisbebop/histline/pkg/store"
	"github.com/luisbebop/histline/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the session subprogram. It always runs, so it should come last in
// a composite program.
type Program struct {
	rc       string
	noRC     bool
	histFile string
	shared   bool
	paths    *prog.DaemonPaths

	// Connects to or spawns the history daemon. If nil, -shared is not
	// supported.
	ActivateDaemon func(io.Writer, *daemondefs.SpawnConfig) (daemondefs.Client, error)
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.rc, "rc", "",
		"Path to the rc file; defaults to $HISTLINE_RC or ~/.histlinerc.yaml")
	fs.BoolVar(&p.noRC, "norc", false, "Don't read the rc file")
	fs.StringVar(&p.histFile, "histfile", "",
		"Path to the history file; defaults to $HISTFILE, the rc file or ~/.histline_history")
	fs.BoolVar(&p.shared, "shared", false,
		"Share the history with other sessions through the history daemon")
	p.paths = fs.DaemonPaths()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one file argument is allowed")
	}
	in := fds[0]
	interactive := sys.IsATTY(fds[0])
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, interactive = f, false
	}

	sess, cleanup := p.setup(fds[2])
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintln(fds[2], "warning:", err)
		}
	}()
	interact(in, fds[1], fds[2], sess, interactive)
	return nil
}

// Builds a session from the rc file and the configured history source. Errors
// are shown as warnings; the session works with what is available. The
// returned function saves the history and releases resources.
func (p *Program) setup(stderr io.Writer) (*session.Session, func() error) {
	cfg := charclass.Default()
	rcFile := &rc.RC{}
	if !p.noRC {
		if path := rcPath(p.rc); path != "" {
			var err error
			rcFile, err = rc.Load(path)
			if err != nil {
				fmt.Fprintln(stderr, "warning:", err)
				rcFile = &rc.RC{}
			}
		}
	}
	rcFile.Apply(cfg)

	sess := session.New(cfg)
	limit := -1
	if rcFile.HistorySize != nil && *rcFile.HistorySize >= 0 {
		limit = *rcFile.HistorySize
		sess.List.Stifle(limit)
	}

	if p.shared {
		if cleanup, ok := p.setupShared(stderr, sess); ok {
			return sess, cleanup
		}
	} else if p.paths.DB != "" {
		st, err := store.NewStore(p.paths.DB)
		if err == nil {
			sess.Store = st
			if err := sess.Preload(st, limit); err != nil {
				fmt.Fprintln(stderr, "warning:", err)
			}
			return sess, st.Close
		}
		fmt.Fprintln(stderr, "warning:", err)
	}

	histFile := histFilePath(p.histFile, rcFile.HistoryFile)
	if histFile == "" {
		return sess, func() error { return nil }
	}
	logger.Println("using history file", fsutil.TildeAbbr(histFile))
	if err := sess.LoadFile(histFile); err != nil {
		fmt.Fprintln(stderr, "warning:", err)
	}
	return sess, func() error { return sess.SaveFile(histFile) }
}

func (p *Program) setupShared(stderr io.Writer, sess *session.Session) (func() error, bool) {
	if p.ActivateDaemon == nil {
		fmt.Fprintln(stderr, "warning: this build has no history daemon")
		fmt.Fprintln(stderr, "history is not shared")
		return nil, false
	}
	spawnCfg, err := daemonPaths(p.paths)
	if err != nil {
		fmt.Fprintln(stderr, "warning:", err)
		fmt.Fprintln(stderr, "history is not shared")
		return nil, false
	}
	cl, err := p.ActivateDaemon(stderr, spawnCfg)
	if err != nil {
		fmt.Fprintln(stderr, "warning:", err)
		fmt.Fprintln(stderr, "history is not shared")
		if cl != nil {
			cl.Close()
		}
		return nil, false
	}
	sess.Shared = cl
	if err := sess.PreloadShared(cl); err != nil {
		fmt.Fprintln(stderr, "warning:", err)
	}
	return cl.Close, true
}
