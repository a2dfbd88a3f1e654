package types

import "errors"

// Storage lifecycle errors.
var (
	ErrDetached        = errors.New("phonebook storage is detached")
	ErrAlreadyAttached = errors.New("phonebook storage is already attached")
)

// Store persists a Directory. Implementations rebuild records through the
// validating constructors, so a restored Directory upholds the same
// invariants as one built in memory.
type Store interface {
	// Attach connects to the backend described by config. Creates the
	// DataDir if it does not exist. Returns ErrAlreadyAttached if called
	// while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Load returns the stored Directory.
	Load() (*Directory, error)

	// Save replaces the stored contents with d.
	Save(d *Directory) error
}
