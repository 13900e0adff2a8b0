// Package fsutil provides filesystem utilities.
package fsutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/luisbebop/histline/pkg/env"
)

const pathSep = string(filepath.Separator)

// GetHome finds the home directory of the current user. $HOME, if set,
// overrides the user database.
func GetHome() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return trimSep(home), nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("can't resolve ~: %w", err)
	}
	return trimSep(u.HomeDir), nil
}

// ExpandTilde replaces a leading "~" in path with the home directory of the
// current user. Other paths are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+pathSep) {
		return path, nil
	}
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return home + path[1:], nil
}

// TildeAbbr abbreviates the user's home directory to ~.
func TildeAbbr(path string) string {
	home, err := GetHome()
	if home == "" || home == "/" || err != nil {
		// If home is "" or "/", do not abbreviate because (1) it is likely a
		// problem with the environment and (2) it will make the path actually
		// longer.
		return path
	}
	if path == home {
		return "~"
	} else if strings.HasPrefix(path, home+pathSep) {
		return "~" + path[len(home):]
	}
	return path
}

func trimSep(s string) string {
	if trimmed := strings.TrimRight(s, pathSep); trimmed != "" {
		return trimmed
	}
	return s
}
