package commands

import (
	"context"

	"relist/internal/core/domain/model/listing"
	"relist/internal/core/domain/services"
)

// ReviewListingCommandHandler applies manager-driven review transitions to a
// listing. Payload fields arrive with the command and are recorded on the
// aggregate before the transition, so reaching under_review with a checklist
// or listed with a final price succeeds in a single call.
//
// Example:
//
//	handler := NewReviewListingCommandHandler(uowFactory, services.NewLifecycle())
//	l, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrMissingRequiredFields) {
//	    // the target status needs checklist or final price data
//	}
type ReviewListingCommandHandler struct {
	uowFactory ListingUoWFactory
	lifecycle  *services.Lifecycle
}

// NewReviewListingCommandHandler creates a handler for review transitions.
// Requires a ListingUoWFactory for transactional persistence.
func NewReviewListingCommandHandler(
	uowFactory ListingUoWFactory,
	lifecycle *services.Lifecycle,
) ReviewListingCommandHandler {
	return ReviewListingCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the review command and returns the updated listing.
// The checklist payload is only applied to listings that have been picked up;
// the aggregate rejects earlier attempts.
func (h ReviewListingCommandHandler) Handle(
	ctx context.Context,
	cmd ReviewListingCommand,
) (*listing.Listing, error) {
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

	l, err := listingRepo.Get(ctx, cmd.ListingID())
	if err != nil {
		return nil, err
	}

	if cmd.Checklist() != nil {
		if err = l.SetChecklist(cmd.Checklist()); err != nil {
			return nil, err
		}
	}
	if cmd.FinalPrice() != nil {
		if err = l.SetFinalPrice(*cmd.FinalPrice()); err != nil {
			return nil, err
		}
	}

	if err = h.lifecycle.ApplyListingTransition(l, cmd.Target(), cmd.ActorRole()); err != nil {
		return nil, err
	}

	if err = listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}
