package prog_test

import (
	"io"
	"os"
	"testing"

	"github.com/luisbebop/histline/pkg/logutil"
	. "github.com/luisbebop/histline/pkg/prog"
	"github.com/luisbebop/histline/pkg/prog/progtest"
	"github.com/luisbebop/histline/pkg/testutil"
)

var (
	Test         = progtest.Test
	ThatHistline = progtest.ThatHistline
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	Test(t, &testProgram{},
		ThatHistline("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatHistline("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatHistline("-help").
			WritesStdoutContaining("Usage: histline [flags] [file]"),

		ThatHistline("-log", "log").DoesNothing(),
	)

	if _, err := os.Stat("log"); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestSharedFlags(t *testing.T) {
	var p1, p2 sharedFlagsProgram
	Test(t, Composite(&p1, &p2),
		ThatHistline("-db", "db", "-sock", "sock", "-json").DoesNothing(),
	)
	if p1.paths != p2.paths || *p1.paths != (DaemonPaths{DB: "db", Sock: "sock"}) {
		t.Errorf("daemon paths not shared: %v, %v", p1.paths, p2.paths)
	}
	if p1.json != p2.json || !*p1.json {
		t.Errorf("-json not shared")
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, &testProgram{nextProgram: true},
		ThatHistline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(&testProgram{nextProgram: true}, &testProgram{writeOut: "program 2"}),
		ThatHistline().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(&testProgram{nextProgram: true}, &testProgram{nextProgram: true}),
		ThatHistline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			&testProgram{writeOut: "program 1"}, &testProgram{writeOut: "program 2"}),
		ThatHistline().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		&testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatHistline().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(3)},
		ThatHistline().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(0)},
		ThatHistline().ExitsWith(0),
	)
}

type testProgram struct {
	nextProgram bool
	writeOut    string
	returnErr   error
}

func (p *testProgram) RegisterFlags(f *FlagSet) {}

func (p *testProgram) Run(fds [3]*os.File, args []string) error {
	if p.nextProgram {
		return ErrNextProgram
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type sharedFlagsProgram struct {
	paths *DaemonPaths
	json  *bool
}

func (p *sharedFlagsProgram) RegisterFlags(f *FlagSet) {
	p.paths = f.DaemonPaths()
	p.json = f.JSON()
}

func (p *sharedFlagsProgram) Run(fds [3]*os.File, args []string) error { return nil }
