// Package sqlite provides the public API for the SQLite phonebook store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// NewBackend creates a new SQLite store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend(logger)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".phonebook-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.Store {
	return sqlite.NewBackend(logger)
}
