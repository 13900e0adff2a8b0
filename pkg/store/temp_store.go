package store

import (
	"path/filepath"

	"github.com/luisbebop/histline/pkg/testutil"
)

// MustGetTempStore returns a Store backed by a file in a temporary directory.
// The store is closed when the test finishes.
func MustGetTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := st.Close()
		if err != nil {
			panic(err)
		}
	})
	return st
}
