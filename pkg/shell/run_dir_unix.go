//go:build unix

package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/luisbebop/histline/pkg/env"
)

// Returns a directory for the socket and log of the daemon, creating it if
// needed. It must be owned by the current user and accessible to no one else.
// An existing directory is used if there is one; otherwise it is created under
// $XDG_RUNTIME_DIR, or the temp dir if that is unset.
func secureRunDir() (string, error) {
	runDirs := runDirPaths()
	for _, runDir := range runDirs {
		if checkExclusiveAccess(runDir) {
			return runDir, nil
		}
	}

	runDir := runDirs[0]
	err := os.MkdirAll(runDir, 0700)
	if err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	if !checkExclusiveAccess(runDir) {
		return "", fmt.Errorf("cannot create %v as a secure run directory", runDir)
	}

	return runDir, nil
}

// Returns the candidate run directories, in order of preference.
func runDirPaths() []string {
	var paths []string
	if xdg := os.Getenv(env.XDG_RUNTIME_DIR); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "histline"))
	}
	uid := os.Getuid()
	paths = append(paths, filepath.Join(os.TempDir(), fmt.Sprintf("histline-%d", uid)))
	return paths
}

func checkExclusiveAccess(runDir string) bool {
	info, err := os.Stat(runDir)
	if err != nil {
		return false
	}
	stat := info.Sys().(*syscall.Stat_t)
	return info.IsDir() && int(stat.Uid) == os.Getuid() && stat.Mode&077 == 0
}
