// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"relist/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ListingRepoFactory provides access to the listing repository within a transaction.
	ListingRepoFactory interface {
		ListingRepository() ports.ListingRepository
	}

	// PickupRepoFactory provides access to the pickup request repository within a transaction.
	PickupRepoFactory interface {
		PickupRequestRepository() ports.PickupRequestRepository
	}

	// ListingUoW manages transactions for listing-only operations.
	// Used when commands only modify listing aggregates.
	ListingUoW interface {
		TxManager
		ListingRepoFactory
	}

	// ListingUoWFactory creates new listing unit of work instances.
	ListingUoWFactory interface {
		Create() ListingUoW
	}

	// PickupUoW manages transactions for pickup-request-only operations.
	PickupUoW interface {
		TxManager
		PickupRepoFactory
	}

	// PickupUoWFactory creates new pickup request unit of work instances.
	PickupUoWFactory interface {
		Create() PickupUoW
	}

	// UoW manages transactions across both listing and pickup request aggregates.
	// Used for commands that coordinate changes between the two, in particular
	// the dual write that advances a listing when its pickup request reaches
	// picked_up.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   pickupRepo := uow.PickupRequestRepository()
	//   listingRepo := uow.ListingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ListingRepoFactory
		PickupRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
