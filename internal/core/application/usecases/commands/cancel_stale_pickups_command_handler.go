package commands

import (
	"context"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/domain/services"
)

// CancelStalePickupsCommandHandler cancels pending pickup requests that were
// never accepted before the configured cutoff. Runs under the system role;
// cancellation from pending is always a legal edge, so no engine failure is
// expected for the loaded set.
type CancelStalePickupsCommandHandler struct {
	uowFactory PickupUoWFactory
	lifecycle  *services.Lifecycle
}

// NewCancelStalePickupsCommandHandler creates a handler for the stale-pickup cleanup.
// Requires a PickupUoWFactory for transactional persistence.
func NewCancelStalePickupsCommandHandler(
	uowFactory PickupUoWFactory,
	lifecycle *services.Lifecycle,
) CancelStalePickupsCommandHandler {
	return CancelStalePickupsCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle cancels every pending request created before the cutoff and returns
// how many were cancelled. All cancellations share one transaction.
func (h CancelStalePickupsCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStalePickupsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickupRepo := uow.PickupRequestRepository()

	stale, err := pickupRepo.GetAllPendingBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	for _, request := range stale {
		if _, err = h.lifecycle.ApplyPickupTransition(
			request, pickup.StatusCancelled, kernel.RoleSystem,
		); err != nil {
			return 0, err
		}

		if err = pickupRepo.Update(ctx, request); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
