package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/liushihao456/emacs-mini-modeline/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file that is closed
// and removed when the test finishes. It panics if the store cannot be
// created.
func MustTempStore(c testutil.Cleanuper) Store {
	dir, err := os.MkdirTemp("", "modeline-store-test")
	if err != nil {
		panic(fmt.Sprintf("create temp dir: %v", err))
	}
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic(fmt.Sprintf("create store: %v", err))
	}
	c.Cleanup(func() {
		st.Close()
		os.RemoveAll(dir)
	})
	return st
}
