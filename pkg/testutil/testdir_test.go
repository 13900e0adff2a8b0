package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luisbebop/histline/pkg/must"
)

func TestTempDir_DirIsValid(t *testing.T) {
	dir := TempDir(t)

	stat, err := os.Stat(dir)
	if err != nil {
		t.Errorf("TempDir returns %q which cannot be stated", dir)
	}
	if !stat.IsDir() {
		t.Errorf("TempDir returns %q which is not a dir", dir)
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	must.WriteFile(filepath.Join(dir, "a"), "test")

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestChdir(t *testing.T) {
	dir := TempDir(t)
	original := must.OK1(os.Getwd())

	c := &cleanuper{}
	Chdir(c, dir)

	if after := must.OK1(os.Getwd()); after != dir {
		t.Errorf("pwd is now %q, want %q", after, dir)
	}

	c.runCleanups()
	if restored := must.OK1(os.Getwd()); restored != original {
		t.Errorf("pwd restored to %q, want %q", restored, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)

	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{"d1": "d1 content"},
	})

	for name, want := range map[string]string{"a": "a content", "d/d1": "d1 content"} {
		if got := must.ReadFileString(name); got != want {
			t.Errorf("file %v is %q, want %q", name, got, want)
		}
	}
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("after Set, x = %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("after cleanup, x = %d, want 1", x)
	}
}

func TestSetenv(t *testing.T) {
	const name = "HISTLINE_TESTUTIL_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	Setenv(c, name, "value")
	if got := os.Getenv(name); got != "value" {
		t.Errorf("got $%s = %q, want %q", name, got, "value")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("$%s still set after cleanup", name)
	}
}

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}
