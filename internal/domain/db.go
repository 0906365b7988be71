package domain

import "context"

// Database is the lifecycle contract a storage backend satisfies. A backend
// owns its own migration files and strategy, so the persistence layer can be
// swapped out behind this interface.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
