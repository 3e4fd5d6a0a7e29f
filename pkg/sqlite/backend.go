// Package sqlite provides the public factory for the SQLite document store
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/flatshare/internal/sqlite"
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Backend is the SQLite document store. Besides the types.Backend
// primitives it offers Export and Import of the whole tree as JSONL.
type Backend = sqlite.Backend

var _ types.Backend = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".flatshare-db",
//	})
//	defer backend.Detach()
func NewBackend() *Backend {
	return sqlite.NewBackend()
}
