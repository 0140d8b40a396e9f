package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when a unique constraint rejects a create.
	ErrExists = errors.New("already exists")
)

// User is the durable identity record. Liveness (the set of bound
// connections) is never persisted; only the credential survives restarts.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore handles identity persistence.
type UserStore interface {
	// CreateUser durably creates a user. Returns ErrExists if the
	// username is already taken; two racing first-time auths for the
	// same username resolve through this.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByUsername retrieves a user, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// Store aggregates the storage interfaces.
type Store interface {
	UserStore

	// Close closes the underlying database connection.
	Close() error
}
