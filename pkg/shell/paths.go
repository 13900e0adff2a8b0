package shell

import (
	"os"
	"path/filepath"

	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
	"github.com/luisbebop/histline/pkg/env"
	"github.com/luisbebop/histline/pkg/fsutil"
	"github.com/luisbebop/histline/pkg/prog"
)

// Resolves the rc file path: the -rc flag, $HISTLINE_RC, then ~/.histlinerc.yaml.
func rcPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(env.HISTLINE_RC); p != "" {
		return p
	}
	home, err := fsutil.GetHome()
	if err != nil {
		logger.Println("cannot find rc file:", err)
		return ""
	}
	return filepath.Join(home, ".histlinerc.yaml")
}

// Resolves the history file path: the -histfile flag, $HISTFILE, the
// history-file key of the rc file, then ~/.histline_history.
func histFilePath(flag string, fromRC *string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(env.HISTFILE); p != "" {
		return p
	}
	if fromRC != nil {
		return *fromRC
	}
	home, err := fsutil.GetHome()
	if err != nil {
		logger.Println("cannot find history file:", err)
		return ""
	}
	return filepath.Join(home, ".histline_history")
}

// Returns a SpawnConfig containing all the paths needed by the daemon. It
// respects overrides of sock and db from CLI flags.
func daemonPaths(p *prog.DaemonPaths) (*daemondefs.SpawnConfig, error) {
	runDir, err := secureRunDir()
	if err != nil {
		return nil, err
	}
	sock := p.Sock
	if sock == "" {
		sock = filepath.Join(runDir, "sock")
	}

	db := p.DB
	if db == "" {
		home, err := fsutil.GetHome()
		if err != nil {
			return nil, err
		}
		db = filepath.Join(home, ".local", "state", "histline", "db.bolt")
		err = os.MkdirAll(filepath.Dir(db), 0700)
		if err != nil {
			return nil, err
		}
	}
	return &daemondefs.SpawnConfig{DBPath: db, SockPath: sock, RunDir: runDir}, nil
}
