// Package tx defines the transaction management contract used by domain
// services, keeping them decoupled from the postgres implementation.
package tx

import (
	"context"
)

// Manager runs units of work inside a database transaction.
// The concrete implementation lives in infrastructure/storage/postgres.
type Manager interface {
	// RunInTransaction executes fn within a transaction: commit on nil,
	// rollback on error. Nested calls reuse the transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager for query-only units of work.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
