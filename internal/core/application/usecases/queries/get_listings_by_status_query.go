package queries

import (
	"errors"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/pkg/guard"
)

var (
	ErrGetListingsByStatusQueryIsNotConstructed = errors.New(
		"GetListingsByStatusQuery must be created via NewGetListingsByStatusQuery constructor",
	)
)

// GetListingsByStatusQuery retrieves all listings currently in a given status.
// Used by warehouse and manager views, e.g. every listing in picked_up
// awaiting review.
//
// Example:
//
//	query, err := NewGetListingsByStatusQuery(listing.StatusPickedUp)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetListingsByStatusQueryHandler(db)
//	awaitingReview, err := handler.Handle(ctx, query)
type GetListingsByStatusQuery struct {
	status listing.Status

	guard guard.ConstructorGuard
}

// NewGetListingsByStatusQuery creates a query for listings in the given status.
// The status must be a valid listing status.
func NewGetListingsByStatusQuery(status listing.Status) (GetListingsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetListingsByStatusQuery{}, err
	}

	return GetListingsByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetListingsByStatusQueryIsNotConstructed if validation fails.
func (q GetListingsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetListingsByStatusQueryIsNotConstructed)
}

// Status returns the listing status being filtered on.
func (q GetListingsByStatusQuery) Status() listing.Status {
	return q.status
}

// ListingQueryResponse represents one listing in the read model.
// FinalPrice is nil until pricing has been determined during review.
type ListingQueryResponse struct {
	ID          kernel.UUID
	SellerID    kernel.UUID
	ProductType string
	Brand       string
	Condition   string
	Status      string
	FinalPrice  *int64
	CreatedAt   time.Time
}
