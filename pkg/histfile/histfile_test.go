package histfile

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/luisbebop/histline/pkg/charclass"
	"github.com/luisbebop/histline/pkg/must"
	"github.com/luisbebop/histline/pkg/testutil"
)

var (
	t1 = time.Unix(1700000000, 0)
	t2 = time.Unix(1700000060, 0)

	records = []Record{
		{Line: "ls -al", Time: t1},
		{Line: "make test"},
		{Line: "git push", Time: t2},
	}
	noTimes = []Record{{Line: "ls -al"}, {Line: "make test"}, {Line: "git push"}}
)

func TestSaveLoad_WithTimestamps(t *testing.T) {
	testutil.InTempDir(t)
	opts := Options{WriteTimestamps: true}

	must.OK(Save("history", records, opts))
	wantContent := "#1700000000\nls -al\nmake test\n#1700000060\ngit push\n"
	if content := must.ReadFileString("history"); content != wantContent {
		t.Errorf("file content (-want +got):\n%s", cmp.Diff(wantContent, content))
	}

	loaded, err := Load("history", opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(records, loaded); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_WithoutTimestamps(t *testing.T) {
	testutil.InTempDir(t)

	must.OK(Save("history", records, Options{}))
	if content := must.ReadFileString("history"); content != "ls -al\nmake test\ngit push\n" {
		t.Errorf("file content = %q", content)
	}
	loaded := must.OK1(Load("history", Options{}))
	if diff := cmp.Diff(noTimes, loaded); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}

	// Lines that look like timestamps are entries.
	commented := []Record{{Line: "#42"}, {Line: "ls"}}
	must.OK(Save("history", commented, Options{}))
	if diff := cmp.Diff(commented, must.OK1(Load("history", Options{}))); diff != "" {
		t.Errorf("Load of #42 (-want +got):\n%s", diff)
	}
}

func TestLoad_LongLine(t *testing.T) {
	testutil.InTempDir(t)
	long := strings.Repeat("x", 2<<20)
	want := []Record{{Line: "a"}, {Line: long}, {Line: "b"}}
	must.OK(Save("history", want, Options{}))

	loaded := must.OK1(Load("history", Options{}))
	if len(loaded) != 3 || loaded[1].Line != long || loaded[2].Line != "b" {
		t.Errorf("Load returned %d records, want a, the long line and b", len(loaded))
	}

	must.OK(Truncate("history", 2, Options{}))
	loaded = must.OK1(Load("history", Options{}))
	if len(loaded) != 2 || loaded[0].Line != long || loaded[1].Line != "b" {
		t.Errorf("after Truncate, got %d records, want the long line and b", len(loaded))
	}
}

func TestSaveLoad_CustomCommentChar(t *testing.T) {
	testutil.InTempDir(t)
	opts := Options{WriteTimestamps: true, CommentChar: '%'}

	must.OK(Save("history", records[:1], opts))
	if content := must.ReadFileString("history"); content != "%1700000000\nls -al\n" {
		t.Errorf("file content = %q", content)
	}
	// With a different comment character the timestamp line is an entry.
	loaded := must.OK1(Load("history", Options{}))
	want := []Record{{Line: "%1700000000"}, {Line: "ls -al"}}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestLoad_TimestampLines(t *testing.T) {
	testutil.InTempDir(t)
	must.WriteFile("history", "#\n#12x\n#5\nfoo\n#6\n#7\nbar\n")

	loaded := must.OK1(Load("history",
		Options{WriteTimestamps: true, CommentChar: charclass.Disabled}))
	want := []Record{
		{Line: "#"},
		{Line: "#12x"},
		{Line: "foo", Time: time.Unix(5, 0)},
		{Line: "bar", Time: time.Unix(7, 0)},
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	testutil.InTempDir(t)

	_, err := Load("nonexistent", Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load -> error %v, want fs.ErrNotExist", err)
	}
	var histErr *Error
	if !errors.As(err, &histErr) || histErr.Op != "read" || histErr.Path != "nonexistent" {
		t.Errorf("Load -> error %#v, want *Error for read of nonexistent", err)
	}
}

func TestReadRange(t *testing.T) {
	testutil.InTempDir(t)
	must.OK(Save("history", records, Options{WriteTimestamps: true}))

	tests := []struct {
		from, to int
		want     []Record
	}{
		{0, -1, records},
		{1, 2, records[1:2]},
		{1, 100, records[1:]},
		{-5, 1, records[:1]},
		{2, 1, nil},
		{3, -1, nil},
	}
	for _, test := range tests {
		got, err := ReadRange("history", test.from, test.to, Options{})
		if err != nil {
			t.Errorf("ReadRange(%d, %d) -> error %v", test.from, test.to, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ReadRange(%d, %d) (-want +got):\n%s", test.from, test.to, diff)
		}
	}
}

func TestAppend(t *testing.T) {
	testutil.InTempDir(t)
	opts := Options{WriteTimestamps: true}

	must.OK(Append("history", records[:1], opts))
	must.OK(Append("history", records[1:], opts))

	loaded := must.OK1(Load("history", opts))
	if diff := cmp.Diff(records, loaded); diff != "" {
		t.Errorf("Load after Append (-want +got):\n%s", diff)
	}
	if _, err := os.Stat("history.lock"); err != nil {
		t.Errorf("lock file not created: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	testutil.InTempDir(t)
	opts := Options{WriteTimestamps: true}
	must.OK(Save("history", records, opts))

	must.OK(Truncate("history", 5, opts))
	if diff := cmp.Diff(records, must.OK1(Load("history", opts))); diff != "" {
		t.Errorf("Truncate to more entries changed the file (-want +got):\n%s", diff)
	}

	must.OK(Truncate("history", 1, opts))
	if content := must.ReadFileString("history"); content != "#1700000060\ngit push\n" {
		t.Errorf("file content after Truncate = %q", content)
	}

	must.OK(Truncate("history", 0, opts))
	if content := must.ReadFileString("history"); content != "" {
		t.Errorf("file content after Truncate(0) = %q", content)
	}
}

func TestTruncate_Missing(t *testing.T) {
	testutil.InTempDir(t)

	err := Truncate("nonexistent", 1, Options{})
	var histErr *Error
	if !errors.As(err, &histErr) || histErr.Op != "truncate" {
		t.Fatalf("Truncate -> error %v, want *Error for truncate", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Truncate -> error %v, want fs.ErrNotExist", err)
	}
	if got := err.Error(); got != "truncate nonexistent: no such file or directory" {
		t.Errorf("Error() = %q", got)
	}
}
