package fsutil

import (
	"testing"

	"github.com/luisbebop/histline/pkg/env"
	"github.com/luisbebop/histline/pkg/testutil"
	"github.com/luisbebop/histline/pkg/tt"
)

func TestGetHome(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/home/u/")
	tt.Test(t, tt.Fn("GetHome", GetHome), tt.Table{
		tt.Args().Rets("/home/u", nil),
	})
}

func TestExpandTilde(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/home/u")
	tt.Test(t, tt.Fn("ExpandTilde", ExpandTilde), tt.Table{
		tt.Args("~").Rets("/home/u", nil),
		tt.Args("~/.histline_history").Rets("/home/u/.histline_history", nil),
		tt.Args("~other/x").Rets("~other/x", nil),
		tt.Args("/tmp/~/x").Rets("/tmp/~/x", nil),
		tt.Args("rel").Rets("rel", nil),
	})
}

func TestTildeAbbr(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/home/u")
	tt.Test(t, tt.Fn("TildeAbbr", TildeAbbr), tt.Table{
		tt.Args("/home/u").Rets("~"),
		tt.Args("/home/u/db").Rets("~/db"),
		tt.Args("/home/user").Rets("/home/user"),
	})

	testutil.Setenv(t, env.HOME, "/")
	tt.Test(t, tt.Fn("TildeAbbr", TildeAbbr), tt.Table{
		tt.Args("/x").Rets("/x"),
	})
}
