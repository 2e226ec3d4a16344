package commands

import (
	"context"
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/domain/services"
	"relist/internal/pkg/errs"
)

var (
	// ErrDuplicateActiveRequest indicates the listing already has a pending or
	// accepted pickup request. A new request can only be created once the
	// prior one is cancelled or completed.
	ErrDuplicateActiveRequest = errors.New("listing already has an active pickup request")
)

// CreatePickupRequestCommandHandler orchestrates the creation of a pickup
// request. Rejects duplicates while an active request exists for the listing,
// and advances the listing to assigned in the same transaction as the
// request insert.
//
// Example:
//
//	handler := NewCreatePickupRequestCommandHandler(uowFactory, services.NewLifecycle())
//	request, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrDuplicateActiveRequest):
//	    // ask the caller to cancel the existing request first
//	case err != nil:
//	    log.Printf("pickup request creation failed: %v", err)
//	}
type CreatePickupRequestCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewCreatePickupRequestCommandHandler creates a handler for pickup request creation.
// Requires a UoWFactory for coordinating the cross-aggregate transaction.
func NewCreatePickupRequestCommandHandler(
	uowFactory UoWFactory,
	lifecycle *services.Lifecycle,
) CreatePickupRequestCommandHandler {
	return CreatePickupRequestCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the pickup request creation command.
// Verifies the listing exists and can be assigned, checks for an existing
// active request, then persists the pending request and the listing's
// assignment within a single transaction.
func (h CreatePickupRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePickupRequestCommand,
) (*pickup.PickupRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	listingRepo := uow.ListingRepository()
	pickupRepo := uow.PickupRequestRepository()

	l, err := listingRepo.Get(ctx, cmd.ListingID())
	if err != nil {
		return nil, err
	}

	_, err = pickupRepo.GetActiveByListingID(ctx, cmd.ListingID())
	if err == nil {
		return nil, ErrDuplicateActiveRequest
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	request, err := pickup.NewPickupRequest(
		cmd.RequestID(),
		cmd.ListingID(),
		cmd.SellerID(),
		cmd.DeliveryAgentID(),
	)
	if err != nil {
		return nil, err
	}

	// Assignment is idempotent for a listing that is already assigned
	// (its previous request was cancelled).
	if err = h.lifecycle.ApplyListingTransition(l, listing.StatusAssigned, kernel.RoleSystem); err != nil {
		return nil, err
	}

	if err = pickupRepo.Add(ctx, request); err != nil {
		return nil, err
	}

	if err = listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
