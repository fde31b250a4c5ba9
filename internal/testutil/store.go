package testutil

import (
	"path/filepath"
	"testing"

	"github.com/roach88/hookrt/internal/store"
)

// TempStore opens a trace store in a fresh temporary directory. The store
// is closed when the test ends.
func TempStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("open temp store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}
