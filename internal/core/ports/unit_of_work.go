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
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// The dual write that couples a pickup request reaching picked_up with the
// linked listing advancing to picked_up relies on both repositories sharing
// one transaction through this interface.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ListingRepository returns a ListingRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	ListingRepository() ListingRepository

	// PickupRequestRepository returns a PickupRequestRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	PickupRequestRepository() PickupRequestRepository
}
