package store

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/luisbebop/histline/pkg/store/storedefs"
	"github.com/luisbebop/histline/pkg/store/storetest"
	"github.com/luisbebop/histline/pkg/testutil"
	bolt "go.etcd.io/bbolt"
)

func TestCmd(t *testing.T) {
	storetest.TestCmd(t, MustGetTempStore(t))
}

func TestMeta(t *testing.T) {
	storetest.TestMeta(t, MustGetTempStore(t))
}

func TestNewStore_Reopen(t *testing.T) {
	dbname := filepath.Join(testutil.TempDir(t), "db")
	st, err := NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	st.AddCmd("echo persisted", time.Unix(42, 0))
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	cmd, err := st.Cmd(1)
	if cmd.Text != "echo persisted" || !cmd.Time.Equal(time.Unix(42, 0)) || err != nil {
		t.Errorf("Cmd(1) after reopening -> (%v, %v)", cmd, err)
	}
	if seq, _ := st.NextCmdSeq(); seq != 2 {
		t.Errorf("NextCmdSeq() after reopening = %d, want 2", seq)
	}
}

func TestCmd_ShortValue(t *testing.T) {
	st := MustGetTempStore(t)
	st.AddCmd("echo full", time.Unix(42, 0))
	db := st.(*dbStore).db
	err := db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte("ls"))
	})
	if err != nil {
		t.Fatal(err)
	}

	if cmd, err := st.Cmd(2); cmd != (Cmd{Text: "ls", Seq: 2}) || err != nil {
		t.Errorf("Cmd(2) -> (%v, %v), want short value as text", cmd, err)
	}
	if cmd, err := st.PrevCmd(3, "l"); cmd.Seq != 2 || err != nil {
		t.Errorf("PrevCmd(3, \"l\") -> (%v, %v)", cmd, err)
	}
	if cmd, err := st.NextCmd(1, "ls"); cmd.Seq != 2 || err != nil {
		t.Errorf("NextCmd(1, \"ls\") -> (%v, %v)", cmd, err)
	}
	cmds, err := st.CmdsWithSeq(1, 3)
	if len(cmds) != 2 || err != nil {
		t.Errorf("CmdsWithSeq(1, 3) -> (%v, %v)", cmds, err)
	}
}

func TestNewStore_Locked(t *testing.T) {
	st := MustGetTempStore(t)
	dbname := st.(*dbStore).db.Path()

	start := time.Now()
	_, err := NewStore(dbname)
	if err == nil {
		t.Fatal("opening a store that is in use succeeded")
	}
	if elapsed := time.Since(start); elapsed < time.Second/2 {
		t.Errorf("NewStore gave up after %v, want about 1s", elapsed)
	}
}
