package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// Returns histline-$USERNAME under the default temp dir, creating it if it
// doesn't yet exist.
func secureRunDir() (string, error) {
	runDir := filepath.Join(os.TempDir(), "histline-"+os.Getenv("USERNAME"))
	err := os.MkdirAll(runDir, 0700)
	if err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	return runDir, nil
}
