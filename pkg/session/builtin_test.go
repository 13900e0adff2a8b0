package session

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/luisbebop/histline/pkg/expand"
	"github.com/luisbebop/histline/pkg/hist"
	"github.com/luisbebop/histline/pkg/must"
	"github.com/luisbebop/histline/pkg/testutil"
)

func runBuiltin(s *Session, line string) (bool, string, error) {
	var sb strings.Builder
	ok, err := s.Builtin(&sb, line)
	return ok, sb.String(), err
}

func TestBuiltin_NotBuiltin(t *testing.T) {
	s := newSession()
	for _, line := range []string{"", "ls", "historyx", "echo history", `"unterminated`} {
		ok, _, err := runBuiltin(s, line)
		if ok || err != nil {
			t.Errorf("Builtin(%q) -> (%v, %v), want (false, nil)", line, ok, err)
		}
	}
}

func TestHistory_List(t *testing.T) {
	s := newSession("ls", "make", "git status")
	s.List.Remove(0)
	s.List.AddTime(fixedTime)

	tests := []struct {
		line string
		want string
	}{
		{"history", "1  make\n2  git status\n"},
		{"history 1", "2  git status\n"},
		{"history 10", "1  make\n2  git status\n"},
		{"history -t", "1  -  make\n2  " + fixedTime.Format(timeLayout) + "  git status\n"},
		{"history -t 1", "2  " + fixedTime.Format(timeLayout) + "  git status\n"},
	}
	for _, test := range tests {
		ok, got, err := runBuiltin(s, test.line)
		if !ok || err != nil {
			t.Errorf("Builtin(%q) -> (%v, %v)", test.line, ok, err)
		}
		if got != test.want {
			t.Errorf("Builtin(%q) wrote %q, want %q", test.line, got, test.want)
		}
	}
}

func TestHistory_Edit(t *testing.T) {
	s := newSession("a", "b", "c", "d")

	must.OK2(runBuiltin(s, "history -d 1"))
	if diff := cmp.Diff([]string{"a", "c", "d"}, lines(s)); diff != "" {
		t.Errorf("after -d (-want +got):\n%s", diff)
	}

	must.OK2(runBuiltin(s, "history -s 2"))
	if diff := cmp.Diff([]string{"c", "d"}, lines(s)); diff != "" {
		t.Errorf("after -s (-want +got):\n%s", diff)
	}

	_, out, err := runBuiltin(s, "history -u")
	if out != "history was stifled to 2 entries\n" || err != nil {
		t.Errorf("-u -> (%q, %v)", out, err)
	}
	_, out, _ = runBuiltin(s, "history -u")
	if out != "" {
		t.Errorf("-u when not stifled wrote %q", out)
	}

	must.OK2(runBuiltin(s, "history -c"))
	if s.List.Len() != 0 {
		t.Errorf("after -c, Len() = %d", s.List.Len())
	}
}

func TestHistory_Files(t *testing.T) {
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "hist file")

	s := newSession("a", "b")
	must.OK2(runBuiltin(s, `history -w "`+path+`"`))

	s2 := newSession("x")
	must.OK2(runBuiltin(s2, `history -r "`+path+`"`))
	if diff := cmp.Diff([]string{"x", "a", "b"}, lines(s2)); diff != "" {
		t.Errorf("after -r (-want +got):\n%s", diff)
	}

	s.List.Add("c", nil)
	must.OK2(runBuiltin(s, `history -a "`+path+`"`))
	s3 := newSession()
	must.OK(s3.LoadFile(path))
	if diff := cmp.Diff([]string{"a", "b", "c"}, lines(s3)); diff != "" {
		t.Errorf("file after -a (-want +got):\n%s", diff)
	}
}

func TestHistory_Print(t *testing.T) {
	s := newSession("git status")
	_, out, err := runBuiltin(s, "history -p echo hi")
	if out != "echo hi\n" || err != nil {
		t.Errorf("-p -> (%q, %v)", out, err)
	}
	if s.List.Len() != 1 {
		t.Errorf("-p added to the history")
	}

	// The arguments are expanded once, by Submit.
	s = newSession("echo wow!!")
	line := must.OK1(s.Submit("history -p !!")).Line
	_, out, err = runBuiltin(s, line)
	if out != "echo wow!!\n" || err != nil {
		t.Errorf("-p after Submit -> (%q, %v), want %q", out, err, "echo wow!!\n")
	}

	_, err = s.Submit("history -p !nope")
	if !errors.Is(err, expand.ErrEventNotFound) {
		t.Errorf("-p with bad event -> %v, want ErrEventNotFound", err)
	}
}

func TestHistory_Errors(t *testing.T) {
	s := newSession("a")
	tests := []struct {
		line    string
		wantErr error
	}{
		{"history -d 5", hist.ErrInvalidOffset},
		{"history -x", ErrHistoryUsage},
		{"history -s -1", ErrHistoryUsage},
		{"history -s nope", ErrHistoryUsage},
		{"history -c extra", ErrHistoryUsage},
		{"history abc", ErrHistoryUsage},
		{"history 1 2", ErrHistoryUsage},
	}
	for _, test := range tests {
		ok, _, err := runBuiltin(s, test.line)
		if !ok || !errors.Is(err, test.wantErr) {
			t.Errorf("Builtin(%q) -> (%v, %v), want (true, %v)",
				test.line, ok, err, test.wantErr)
		}
	}
	if s.List.Len() != 1 {
		t.Errorf("failed commands changed the history")
	}
}
