package commands

import (
	"context"
	"errors"
	"fmt"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/domain/services"
)

var (
	// ErrPartialFailure indicates the dual write coupling a pickup request to
	// its listing could not be completed. The transaction was rolled back, so
	// no partial state is visible; transitions are idempotent once achieved,
	// so the caller can safely retry the same request.
	ErrPartialFailure = errors.New("pickup request and listing could not be updated atomically")
)

// UpdatePickupRequestCommandHandler applies a status transition to a pickup
// request. When a request reaches picked_up, the lifecycle engine emits an
// obligation to advance the linked listing to picked_up; the handler fulfills
// it within the same transaction so both records change or neither does.
//
// Example:
//
//	handler := NewUpdatePickupRequestCommandHandler(uowFactory, services.NewLifecycle())
//	request, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrUnauthorizedActor):
//	    // caller's role may not drive this edge
//	case errors.Is(err, ports.ErrStaleWrite), errors.Is(err, ErrPartialFailure):
//	    // safe to retry after reloading
//	}
type UpdatePickupRequestCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewUpdatePickupRequestCommandHandler creates a handler for pickup request transitions.
// Requires a UoWFactory so the obligated listing write shares the request's transaction.
func NewUpdatePickupRequestCommandHandler(
	uowFactory UoWFactory,
	lifecycle *services.Lifecycle,
) UpdatePickupRequestCommandHandler {
	return UpdatePickupRequestCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the transition command and returns the updated request.
// Engine failures (illegal edge, unauthorized actor, terminal entity) pass
// through unchanged for the caller to classify. A failure while fulfilling
// the listing obligation is reported as ErrPartialFailure wrapping the cause.
func (h UpdatePickupRequestCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePickupRequestCommand,
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

	pickupRepo := uow.PickupRequestRepository()

	request, err := pickupRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	obligation, err := h.lifecycle.ApplyPickupTransition(request, cmd.Target(), cmd.ActorRole())
	if err != nil {
		return nil, err
	}

	if err = pickupRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if obligation != nil {
		if err = h.fulfillListingObligation(ctx, uow, obligation); err != nil {
			return nil, fmt.Errorf("%w (cause: %w)", ErrPartialFailure, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		if obligation != nil {
			return nil, fmt.Errorf("%w (cause: %w)", ErrPartialFailure, err)
		}
		return nil, err
	}

	return request, nil
}

func (h UpdatePickupRequestCommandHandler) fulfillListingObligation(
	ctx context.Context,
	uow UoW,
	obligation *services.ListingObligation,
) error {
	listingRepo := uow.ListingRepository()

	l, err := listingRepo.Get(ctx, obligation.ListingID)
	if err != nil {
		return err
	}

	if err = h.lifecycle.ApplyListingTransition(l, obligation.Target, kernel.RoleSystem); err != nil {
		return err
	}

	return listingRepo.Update(ctx, l)
}
