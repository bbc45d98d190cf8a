package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and collects the status changes written in it.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and forgets collected status changes.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// ServiceRepository returns a ServiceRepository bound to the current transaction.
	ServiceRepository() ServiceRepository

	// MaterialRepository returns a MaterialRepository bound to the current transaction.
	MaterialRepository() MaterialRepository

	// StatusChanges returns the events for every history entry written through this
	// unit of work. Callers publish them once Commit succeeded.
	StatusChanges() []StatusChangedEvent
}
