package commands

import (
	"context"

	"relist/internal/core/domain/model/listing"
)

// CreateListingCommandHandler handles the business logic for listing creation.
// Creates new listings in requested status, ready for a pickup request.
type CreateListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

// NewCreateListingCommandHandler creates a handler for listing creation operations.
// Requires a ListingUoWFactory for transactional persistence.
func NewCreateListingCommandHandler(uowFactory ListingUoWFactory) CreateListingCommandHandler {
	return CreateListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the listing creation command and returns the created listing.
// Uses a transaction to ensure the listing is properly persisted or rolled back on error.
func (h CreateListingCommandHandler) Handle(
	ctx context.Context,
	cmd CreateListingCommand,
) (*listing.Listing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := listing.NewListing(
		cmd.ListingID(),
		cmd.SellerID(),
		cmd.ProductType(),
		cmd.Brand(),
		cmd.Condition(),
		cmd.Description(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ListingRepository().Add(ctx, l); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}
