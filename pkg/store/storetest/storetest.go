// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/luisbebop/histline/pkg/store/storedefs"
)

var (
	cmds = []storedefs.Cmd{
		{Text: "echo foo", Time: time.Unix(1000, 0)},
		{Text: "put bar"},
		{Text: "put lorem", Time: time.Unix(3000, 0)},
		{Text: "echo bar"},
	}
	searches = []struct {
		next      bool
		seq       int
		prefix    string
		wantedSeq int
		wantedCmd string
		wantedErr error
	}{
		{false, 5, "echo", 4, "echo bar", nil},
		{false, 5, "put", 3, "put lorem", nil},
		{false, 4, "echo", 1, "echo foo", nil},
		{false, 3, "f", 0, "", storedefs.ErrNoMatchingCmd},
		{false, 1, "", 0, "", storedefs.ErrNoMatchingCmd},

		{true, 1, "echo", 1, "echo foo", nil},
		{true, 1, "put", 2, "put bar", nil},
		{true, 2, "echo", 4, "echo bar", nil},
		{true, 4, "put", 0, "", storedefs.ErrNoMatchingCmd},
	}
)

// TestCmd tests the command history functionality of a Store. The store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (1, nil)",
			startSeq, err)
	}
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd.Text, cmd.Time)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> (%v, %v), want (%v, nil)",
				cmd.Text, seq, err, wantSeq)
		}
	}
	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		wantedCmd.Seq = seq
		cmd, err := store.Cmd(seq)
		if err != nil {
			t.Errorf("store.Cmd(%v) -> error %v", seq, err)
		}
		if diff := cmp.Diff(wantedCmd, cmd); diff != "" {
			t.Errorf("store.Cmd(%v) (-want +got):\n%s", seq, diff)
		}
	}
	for _, tt := range searches {
		f := store.PrevCmd
		fname := "store.PrevCmd"
		if tt.next {
			f = store.NextCmd
			fname = "store.NextCmd"
		}
		cmd, err := f(tt.seq, tt.prefix)
		wantedCmd := storedefs.Cmd{Text: tt.wantedCmd, Seq: tt.wantedSeq}
		if cmd.Seq != wantedCmd.Seq || cmd.Text != wantedCmd.Text || err != tt.wantedErr {
			t.Errorf("%s(%v, %v) -> (%v, %v), want (%v, %v)",
				fname, tt.seq, tt.prefix, cmd, err, wantedCmd, tt.wantedErr)
		}
	}

	wantRange := []storedefs.Cmd{
		{Text: "put bar", Seq: 2},
		{Text: "put lorem", Seq: 3, Time: time.Unix(3000, 0)},
	}
	gotRange, err := store.CmdsWithSeq(2, 4)
	if err != nil {
		t.Errorf("store.CmdsWithSeq(2, 4) -> error %v", err)
	}
	if diff := cmp.Diff(wantRange, gotRange); diff != "" {
		t.Errorf("store.CmdsWithSeq(2, 4) (-want +got):\n%s", diff)
	}

	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v, want nil", err)
	}
	if _, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after deletion -> error %v, want ErrNoMatchingCmd", err)
	}
}

// TestMeta tests the metadata functionality of a Store.
func TestMeta(t *testing.T, store storedefs.Store) {
	t.Helper()

	if _, err := store.Meta("stifle"); err != storedefs.ErrNoMeta {
		t.Errorf("store.Meta(unset) -> error %v, want ErrNoMeta", err)
	}
	if err := store.SetMeta("stifle", "100"); err != nil {
		t.Errorf("store.SetMeta -> %v, want nil", err)
	}
	if v, err := store.Meta("stifle"); v != "100" || err != nil {
		t.Errorf("store.Meta -> (%q, %v), want (\"100\", nil)", v, err)
	}
	if err := store.DelMeta("stifle"); err != nil {
		t.Errorf("store.DelMeta -> %v, want nil", err)
	}
	if _, err := store.Meta("stifle"); err != storedefs.ErrNoMeta {
		t.Errorf("store.Meta(deleted) -> error %v, want ErrNoMeta", err)
	}
}
