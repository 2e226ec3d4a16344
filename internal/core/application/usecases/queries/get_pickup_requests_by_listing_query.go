package queries

import (
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/pkg/guard"
)

var (
	ErrGetPickupRequestsByListingQueryIsNotConstructed = errors.New(
		"GetPickupRequestsByListingQuery must be created via NewGetPickupRequestsByListingQuery constructor",
	)
)

// GetPickupRequestsByListingQuery retrieves the full pickup request history of
// a listing, including cancelled and completed requests. Archiving a listing's
// workflow does not delete its request history, so this is the audit view.
type GetPickupRequestsByListingQuery struct {
	listingID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPickupRequestsByListingQuery creates a query for a listing's pickup requests.
// The listing identifier is required and validated.
func NewGetPickupRequestsByListingQuery(listingID kernel.UUID) (GetPickupRequestsByListingQuery, error) {
	if err := listingID.Validate(); err != nil {
		return GetPickupRequestsByListingQuery{}, err
	}

	return GetPickupRequestsByListingQuery{
		listingID: listingID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPickupRequestsByListingQueryIsNotConstructed if validation fails.
func (q GetPickupRequestsByListingQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupRequestsByListingQueryIsNotConstructed)
}

// ListingID returns the identifier of the listing whose requests are listed.
func (q GetPickupRequestsByListingQuery) ListingID() kernel.UUID {
	return q.listingID
}
