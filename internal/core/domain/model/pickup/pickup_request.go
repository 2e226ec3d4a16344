package pickup

import (
	"errors"
	"fmt"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/pkg/errs"
)

var (
	// ErrPickupRequestIsNotConstructed is returned when a PickupRequest instance was
	// not created through the NewPickupRequest or RestorePickupRequest factory methods.
	ErrPickupRequestIsNotConstructed = errors.New(
		"PickupRequest must be created via NewPickupRequest constructor",
	)
)

// PickupRequest is the aggregate root for the assignment of a listing to a
// delivery agent for physical collection. It references the listing by
// identifier only: archiving a listing's workflow does not cascade into the
// pickup request history.
//
// PickupRequest follows these invariants:
//   - Must reference valid listing, seller, and delivery agent identifiers
//   - Status only advances along the edges of the transition graph
//   - Becomes immutable once picked_up or cancelled
//   - Can only be created through NewPickupRequest or RestorePickupRequest
//
// At most one active (pending or accepted) request may exist per listing;
// that rule spans multiple aggregates and is enforced by the coordinator.
type PickupRequest struct {
	id              kernel.UUID
	listingID       kernel.UUID
	sellerID        kernel.UUID
	deliveryAgentID kernel.UUID

	status Status

	// version is the optimistic-concurrency revision checked on every write.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPickupRequest creates a PickupRequest in pending status.
// All four identifiers are required and validated.
func NewPickupRequest(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	deliveryAgentID kernel.UUID,
) (*PickupRequest, error) {
	now := time.Now().UTC()
	r := &PickupRequest{
		status:        StatusPending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setListingID(listingID),
		r.setSellerID(sellerID),
		r.setDeliveryAgentID(deliveryAgentID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestorePickupRequest reconstructs a PickupRequest from persistence.
func RestorePickupRequest(
	id kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	deliveryAgentID kernel.UUID,
	status Status,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*PickupRequest, error) {
	r := &PickupRequest{
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setListingID(listingID),
		r.setSellerID(sellerID),
		r.setDeliveryAgentID(deliveryAgentID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	r.status = status
	return r, nil
}

// Validate ensures the PickupRequest instance was properly constructed
// through a factory method.
func (r *PickupRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrPickupRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two pickup requests by their unique identifiers.
func (r *PickupRequest) IsEqual(other *PickupRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the pickup request's unique identifier.
func (r *PickupRequest) ID() kernel.UUID {
	return r.id
}

// ListingID returns the identifier of the listing to collect.
func (r *PickupRequest) ListingID() kernel.UUID {
	return r.listingID
}

// SellerID returns the identifier of the seller holding the item.
func (r *PickupRequest) SellerID() kernel.UUID {
	return r.sellerID
}

// DeliveryAgentID returns the identifier of the assigned delivery agent.
func (r *PickupRequest) DeliveryAgentID() kernel.UUID {
	return r.deliveryAgentID
}

// Status returns the current status of the pickup request.
func (r *PickupRequest) Status() Status {
	return r.status
}

// IsActive reports whether the request still blocks the creation of another
// pickup request for the same listing.
func (r *PickupRequest) IsActive() bool {
	return r.status.IsActive()
}

// Version returns the optimistic-concurrency revision the aggregate was
// loaded at. Repositories check it on every write.
func (r *PickupRequest) Version() int {
	return r.version
}

// CreatedAt returns the creation timestamp.
func (r *PickupRequest) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the timestamp of the last state change.
func (r *PickupRequest) UpdatedAt() time.Time {
	return r.updatedAt
}

// TransitionTo advances the pickup request to target along the transition
// graph. Re-applying the current status is a no-op, not an error, so achieved
// transitions stay idempotent under retries.
//
// TransitionTo performs no I/O; persistence is the caller's responsibility.
func (r *PickupRequest) TransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == r.status {
		return nil
	}

	if r.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is a terminal status", r.status),
		)
	}

	if !r.status.CanTransitionTo(target) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition pickup request from %s to %s", r.status, target),
		)
	}

	r.status = target
	r.updatedAt = time.Now().UTC()
	return nil
}

func (r *PickupRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *PickupRequest) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	r.listingID = listingID
	return nil
}

func (r *PickupRequest) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	r.sellerID = sellerID
	return nil
}

func (r *PickupRequest) setDeliveryAgentID(deliveryAgentID kernel.UUID) error {
	if err := deliveryAgentID.Validate(); err != nil {
		return err
	}
	r.deliveryAgentID = deliveryAgentID
	return nil
}
