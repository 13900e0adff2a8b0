package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "github.com/luisbebop/histline/pkg/prog/progtest"
	"github.com/luisbebop/histline/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatHistline("-version").WritesStdout(Value.Version+"\n"),
		ThatHistline("-version", "-json").
			WritesStdout(fmt.Sprintf("%q\n", Value.Version)),
		ThatHistline("-buildinfo").WritesStdout(
			"Version: "+Value.Version+"\nGo version: "+Value.GoVersion+"\n"),
		ThatHistline("-buildinfo", "-json").
			WritesStdoutContaining(`"goversion":"`+Value.GoVersion+`"`),
		// Without -version or -buildinfo the next program should run.
		ThatHistline().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

var noBuildInfo *debug.BuildInfo

func vcs(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func version(vcsOverride string, bi *debug.BuildInfo) string {
	return devVersion("1.5.0", vcsOverride, func() (*debug.BuildInfo, bool) {
		return bi, bi != nil
	})
}

func TestDevVersion(t *testing.T) {
	tt.Test(t, tt.Fn("devVersion", version), tt.Table{
		tt.Args("", noBuildInfo).Rets("1.5.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("1.5.0-dev.unknown"),
		// Installed with go install ...@version
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "v1.4.2"}}).
			Rets("1.4.2"),

		tt.Args("", vcs("abcdef0123456789", "2023-11-05T08:09:10Z", "false")).
			Rets("1.5.0-dev.0.20231105080910-abcdef012345"),
		tt.Args("", vcs("abcdef0123456789", "2023-11-05T08:09:10Z", "true")).
			Rets("1.5.0-dev.0.20231105080910-abcdef012345-dirty"),
		tt.Args("", vcs("abcdef", "2023-11-05T08:09:10Z", "false")).
			Rets("1.5.0-dev.unknown"),
		tt.Args("", vcs("abcdef0123456789", "yesterday", "false")).
			Rets("1.5.0-dev.unknown"),

		tt.Args("20231105080910-abcdef012345", noBuildInfo).
			Rets("1.5.0-dev.0.20231105080910-abcdef012345"),
	})
}
