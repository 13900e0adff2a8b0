package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luisbebop/histline/pkg/daemon/daemondefs"
)

// Name of the log file of spawned daemons, inside RunDir.
const logFileName = "daemon.log"

// Replaced in tests.
var startProcess = func(name string, argv []string, attr *os.ProcAttr) error {
	_, err := os.StartProcess(name, argv, attr)
	return err
}

// Spawns a daemon process in the background by invoking BinPath, passing
// DBPath and SockPath as command-line flags after resolving them to absolute
// paths. The stdout and stderr of the daemon are appended to a log file in
// RunDir.
//
// A suitable ProcAttr is chosen depending on the OS and makes sure that the
// daemon is detached from the current terminal, so that it is not affected by
// I/O or signals in the current terminal and keeps running after the current
// process quits.
func spawn(cfg *daemondefs.SpawnConfig) error {
	binPath := cfg.BinPath
	if binPath == "" {
		bin, err := os.Executable()
		if err != nil {
			return errors.New("cannot find histline: " + err.Error())
		}
		binPath = bin
	}

	var pathError error
	abs := func(name string, path string) string {
		if pathError != nil {
			return ""
		}
		if path == "" {
			pathError = fmt.Errorf("%s is required for spawning daemon", name)
			return ""
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			pathError = fmt.Errorf("cannot resolve %s to absolute path: %s", name, err)
		}
		return absPath
	}
	binPath = abs("BinPath", binPath)
	dbPath := abs("DBPath", cfg.DBPath)
	sockPath := abs("SockPath", cfg.SockPath)
	runDir := abs("RunDir", cfg.RunDir)
	if pathError != nil {
		return pathError
	}

	args := []string{
		binPath,
		"-daemon",
		"-db", dbPath,
		"-sock", sockPath,
	}

	out, err := os.OpenFile(filepath.Join(runDir, logFileName),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	// The daemon does not read any input; open DevNull and use it for stdin. We
	// could also just close the stdin, but on Unix that would make the first
	// file opened by the daemon take FD 0.
	in, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
	if err != nil {
		in = os.Stdin
	} else {
		defer in.Close()
	}

	return startProcess(binPath, args, procAttrForSpawn([]*os.File{in, out, out}))
}
