package services

import (
	"errors"
	"fmt"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/core/domain/model/pickup"
)

var (
	// ErrIllegalTransition indicates the requested status is not a direct
	// successor of the current status in the relevant transition graph.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrUnauthorizedActor indicates the acting role is not permitted to
	// drive the requested transition, even if the edge itself is legal.
	ErrUnauthorizedActor = errors.New("actor is not permitted for this transition")

	// ErrMissingRequiredFields indicates the target status requires payload
	// fields that are absent on the entity.
	ErrMissingRequiredFields = errors.New("required fields are missing for the target status")

	// ErrEntityTerminal indicates the entity is already in a terminal state
	// and permits no further transitions.
	ErrEntityTerminal = errors.New("entity is in a terminal state")
)

// ListingObligation is a side effect emitted by a pickup request transition:
// an instruction to the coordinator to advance the linked listing, fulfilled
// in the same transaction as the pickup request write.
type ListingObligation struct {
	ListingID kernel.UUID
	Target    listing.Status
}

// pickupEdge and listingEdge key the per-edge actor permission tables.
type pickupEdge struct {
	from, to pickup.Status
}

type listingEdge struct {
	from, to listing.Status
}

// getPickupPermissions returns which roles may drive each pickup request edge.
// Delivery agents move their assignments forward; sellers may withdraw a
// request that has not been accepted yet; the system role cancels stale requests.
func getPickupPermissions() map[pickupEdge][]kernel.Role {
	return map[pickupEdge][]kernel.Role{
		{pickup.StatusPending, pickup.StatusAccepted}:  {kernel.RoleDeliveryAgent},
		{pickup.StatusAccepted, pickup.StatusPickedUp}: {kernel.RoleDeliveryAgent},
		{pickup.StatusPending, pickup.StatusCancelled}: {
			kernel.RoleSeller, kernel.RoleDeliveryAgent, kernel.RoleSystem,
		},
		{pickup.StatusAccepted, pickup.StatusCancelled}: {
			kernel.RoleDeliveryAgent, kernel.RoleSystem,
		},
	}
}

// getListingPermissions returns which roles may drive each listing edge.
// Managers own the review pipeline; the system role drives the edges that
// mirror pickup request events (assignment and collection).
func getListingPermissions() map[listingEdge][]kernel.Role {
	return map[listingEdge][]kernel.Role{
		{listing.StatusRequested, listing.StatusAssigned}:     {kernel.RoleSystem},
		{listing.StatusAssigned, listing.StatusPickedUp}:      {kernel.RoleSystem},
		{listing.StatusPickedUp, listing.StatusUnderReview}:   {kernel.RoleManager},
		{listing.StatusUnderReview, listing.StatusRedesigned}: {kernel.RoleManager},
		{listing.StatusUnderReview, listing.StatusListed}:     {kernel.RoleManager},
		{listing.StatusUnderReview, listing.StatusRejected}:   {kernel.RoleManager},
		{listing.StatusRedesigned, listing.StatusUnderReview}: {kernel.RoleManager},
	}
}

// Lifecycle is the single source of truth for "is this transition legal, and
// what must be true for it to apply". It validates and applies status
// transitions for listings and pickup requests, enforcing actor permissions
// and field-presence invariants. Lifecycle is stateless and performs no I/O;
// persisting the mutated aggregates is the caller's responsibility.
//
// Example:
//
//	lc := services.NewLifecycle()
//	if err := lc.ValidatePickupTransition(req, pickup.StatusAccepted, role); err != nil {
//	    return err
//	}
//	obligation, err := lc.ApplyPickupTransition(req, pickup.StatusAccepted, role)
type Lifecycle struct{}

// NewLifecycle creates a new lifecycle engine.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// ValidatePickupTransition checks whether role may move the pickup request to
// target from its current status. Checks run in order: terminal state
// (ErrEntityTerminal), graph edge (ErrIllegalTransition), actor permission
// (ErrUnauthorizedActor). Re-requesting the current status is valid: achieved
// transitions are idempotent.
func (lc *Lifecycle) ValidatePickupTransition(
	request *pickup.PickupRequest,
	target pickup.Status,
	role kernel.Role,
) error {
	if err := request.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	current := request.Status()
	if target == current {
		return nil
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w: pickup request %s is %s", ErrEntityTerminal, request.ID(), current)
	}

	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: pickup request cannot move from %s to %s", ErrIllegalTransition, current, target)
	}

	if !roleAllowed(getPickupPermissions()[pickupEdge{current, target}], role) {
		return fmt.Errorf("%w: %s cannot move a pickup request from %s to %s",
			ErrUnauthorizedActor, role, current, target)
	}

	return nil
}

// ApplyPickupTransition validates and applies the transition, returning the
// obligation the coordinator must fulfill atomically with the pickup request
// write. The obligation is non-nil only when the request reaches picked_up,
// in which case the linked listing must advance to picked_up as well.
// Re-applying the current status returns the unchanged request and no obligation.
func (lc *Lifecycle) ApplyPickupTransition(
	request *pickup.PickupRequest,
	target pickup.Status,
	role kernel.Role,
) (*ListingObligation, error) {
	if err := lc.ValidatePickupTransition(request, target, role); err != nil {
		return nil, err
	}

	if target == request.Status() {
		return nil, nil
	}

	if err := request.TransitionTo(target); err != nil {
		return nil, err
	}

	if target == pickup.StatusPickedUp {
		return &ListingObligation{
			ListingID: request.ListingID(),
			Target:    listing.StatusPickedUp,
		}, nil
	}

	return nil, nil
}

// ValidateListingTransition checks whether role may move the listing to
// target from its current status. Checks run in the same order as
// ValidatePickupTransition. The redesign loop bound is enforced here as well:
// a listing that already re-entered review cannot do so again.
func (lc *Lifecycle) ValidateListingTransition(
	l *listing.Listing,
	target listing.Status,
	role kernel.Role,
) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	current := l.Status()
	if target == current {
		return nil
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w: listing %s is %s", ErrEntityTerminal, l.ID(), current)
	}

	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: listing cannot move from %s to %s", ErrIllegalTransition, current, target)
	}

	if current == listing.StatusRedesigned && target == listing.StatusUnderReview && l.RedesignCount() >= 1 {
		return fmt.Errorf("%w: listing %s already re-entered review", ErrIllegalTransition, l.ID())
	}

	if !roleAllowed(getListingPermissions()[listingEdge{current, target}], role) {
		return fmt.Errorf("%w: %s cannot move a listing from %s to %s",
			ErrUnauthorizedActor, role, current, target)
	}

	return nil
}

// RequiredListingFields returns the names of the fields that must be present
// on a listing before it can reach target. Reaching under_review requires the
// inspection checklist; reaching listed requires the final price.
func (lc *Lifecycle) RequiredListingFields(target listing.Status) []string {
	switch target {
	case listing.StatusUnderReview:
		return []string{"checklist"}
	case listing.StatusListed:
		return []string{"final_price"}
	default:
		return nil
	}
}

// ApplyListingTransition validates and applies the transition, including the
// field-presence invariants of the target status. Fails with
// ErrMissingRequiredFields when a required field is absent. Re-applying the
// current status leaves the listing unchanged.
func (lc *Lifecycle) ApplyListingTransition(
	l *listing.Listing,
	target listing.Status,
	role kernel.Role,
) error {
	if err := lc.ValidateListingTransition(l, target, role); err != nil {
		return err
	}

	if target == l.Status() {
		return nil
	}

	if missing := lc.missingListingFields(l, target); len(missing) > 0 {
		return fmt.Errorf("%w: %v must be set before a listing becomes %s",
			ErrMissingRequiredFields, missing, target)
	}

	return l.TransitionTo(target)
}

func (lc *Lifecycle) missingListingFields(l *listing.Listing, target listing.Status) []string {
	var missing []string
	for _, field := range lc.RequiredListingFields(target) {
		switch field {
		case "checklist":
			if !l.HasChecklist() {
				missing = append(missing, field)
			}
		case "final_price":
			if l.FinalPrice() == nil {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func roleAllowed(allowed []kernel.Role, role kernel.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
