package commands

import (
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/pkg/guard"
)

var (
	ErrReviewListingCommandIsNotConstructed = errors.New(
		"ReviewListingCommand must be created via NewReviewListingCommand constructor",
	)
)

// ReviewListingCommand represents a warehouse manager driving a collected
// listing through review: into under_review, out to redesigned, or to a
// terminal listed/rejected state. The optional checklist and final price
// payload is applied before the transition so the target status's
// field-presence invariants can be satisfied in one call.
//
// Example:
//
//	cmd, err := NewReviewListingCommand(
//	    listingID,
//	    kernel.RoleManager,
//	    listing.StatusUnderReview,
//	    map[string]string{"zipper": "intact", "lining": "worn"},
//	    nil,
//	)
type ReviewListingCommand struct { //nolint:recvcheck //using for validation
	listingID  kernel.UUID
	actorRole  kernel.Role
	target     listing.Status
	checklist  map[string]string
	finalPrice *int64

	guard guard.ConstructorGuard
}

// NewReviewListingCommand creates a command to transition a listing during review.
// Checklist and finalPrice may be nil when the target status does not require them.
func NewReviewListingCommand(
	listingID kernel.UUID,
	actorRole kernel.Role,
	target listing.Status,
	checklist map[string]string,
	finalPrice *int64,
) (ReviewListingCommand, error) {
	cmd := ReviewListingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setListingID(listingID),
		cmd.setActorRole(actorRole),
		cmd.setTarget(target),
	); err != nil {
		return ReviewListingCommand{}, err
	}

	if checklist != nil {
		cmd.checklist = make(map[string]string, len(checklist))
		for k, v := range checklist {
			cmd.checklist[k] = v
		}
	}
	if finalPrice != nil {
		price := *finalPrice
		cmd.finalPrice = &price
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReviewListingCommandIsNotConstructed if validation fails.
func (c ReviewListingCommand) Validate() error {
	return c.guard.Validate(ErrReviewListingCommandIsNotConstructed)
}

// ListingID returns the identifier of the listing under review.
func (c ReviewListingCommand) ListingID() kernel.UUID {
	return c.listingID
}

// ActorRole returns the role of the actor driving the transition.
func (c ReviewListingCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Target returns the requested target status.
func (c ReviewListingCommand) Target() listing.Status {
	return c.target
}

// Checklist returns the inspection checklist payload, or nil if not supplied.
func (c ReviewListingCommand) Checklist() map[string]string {
	return c.checklist
}

// FinalPrice returns the pricing payload in minor currency units, or nil if
// not supplied.
func (c ReviewListingCommand) FinalPrice() *int64 {
	return c.finalPrice
}

func (c *ReviewListingCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *ReviewListingCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}

func (c *ReviewListingCommand) setTarget(target listing.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
