// Package ports defines repository interfaces for the relist domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
)

// ErrStaleWrite indicates an optimistic-concurrency conflict: the stored
// revision of the aggregate no longer matches the revision it was loaded at.
// The write was not applied; reloading the aggregate and retrying is safe.
var ErrStaleWrite = errors.New("stale write: aggregate version conflict")

// ListingRepository defines the persistence contract for listing aggregates.
// All writes are revision-checked: Update fails with ErrStaleWrite when a
// concurrent write has advanced the stored version since the aggregate was
// loaded, so conflicting transitions on the same listing cannot both succeed.
type ListingRepository interface {
	// Add persists a new listing aggregate to storage.
	// The listing must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *listing.Listing) error

	// Update persists changes to an existing listing aggregate.
	// Returns ErrStaleWrite on a version conflict and ObjectNotFound when
	// the listing does not exist.
	Update(ctx context.Context, aggregate *listing.Listing) error

	// Get retrieves a listing aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error)

	// GetAllInStatus retrieves all listings currently in the given status.
	// Used by warehouse and manager views, e.g. all listings in picked_up
	// awaiting review. Returns an empty slice when none match.
	GetAllInStatus(ctx context.Context, status listing.Status) ([]*listing.Listing, error)
}
