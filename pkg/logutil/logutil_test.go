package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var sb strings.Builder
	logger := GetLogger("[foo] ")
	SetOutput(&sb)
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("out 1")
	if !strings.Contains(sb.String(), "[foo] ") || !strings.HasSuffix(sb.String(), "out 1\n") {
		t.Errorf("got log output %q", sb.String())
	}

	// Loggers created after SetOutput use the new output too.
	sb.Reset()
	GetLogger("[bar] ").Println("out 2")
	if !strings.Contains(sb.String(), "[bar] ") {
		t.Errorf("got log output %q", sb.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "log")
	logger := GetLogger("[file] ")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	// Switching back to discard closes the file.
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(content, []byte("to file")) {
		t.Errorf("log file has %q, want it to contain %q", content, "to file")
	}
}

func TestSetOutputFile_Error(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir"))
	if err == nil {
		t.Errorf("got nil error, want non-nil")
	}
}
