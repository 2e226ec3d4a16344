package ports

import (
	"context"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
)

// PickupRequestRepository defines the persistence contract for pickup request
// aggregates. Like ListingRepository, all updates are revision-checked and
// fail with ErrStaleWrite on conflict.
type PickupRequestRepository interface {
	// Add persists a new pickup request aggregate to storage.
	Add(ctx context.Context, aggregate *pickup.PickupRequest) error

	// Update persists changes to an existing pickup request aggregate.
	// Returns ErrStaleWrite on a version conflict and ObjectNotFound when
	// the request does not exist.
	Update(ctx context.Context, aggregate *pickup.PickupRequest) error

	// Get retrieves a pickup request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pickup.PickupRequest, error)

	// GetActiveByListingID retrieves the active (pending or accepted) request
	// for a listing, if one exists. Returns ObjectNotFound when the listing
	// has no active request; at most one can exist at a time.
	GetActiveByListingID(ctx context.Context, listingID kernel.UUID) (*pickup.PickupRequest, error)

	// GetAllPendingBefore retrieves all requests still pending that were
	// created before the cutoff. Used by the stale-pickup expiry job.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*pickup.PickupRequest, error)
}
