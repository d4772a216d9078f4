package iotesting

import (
	"path/filepath"
	"testing"

	"github.com/herbolive/herbdb/internal/iostore"
)

// NewSQLiteStore opens a plant store in a temporary SQLite file. The
// store is closed when the test finishes.
func NewSQLiteStore(t *testing.T, opts ...iostore.Option) *iostore.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "herbdb.sqlite")
	st, err := iostore.OpenSQLite(path, opts...)
	if err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}
