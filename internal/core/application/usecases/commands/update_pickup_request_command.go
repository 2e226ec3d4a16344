package commands

import (
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/pkg/guard"
)

var (
	ErrUpdatePickupRequestCommandIsNotConstructed = errors.New(
		"UpdatePickupRequestCommand must be created via NewUpdatePickupRequestCommand constructor",
	)
)

// UpdatePickupRequestCommand represents an actor driving a pickup request
// through its lifecycle: the delivery agent accepting or completing the
// collection, or any permitted actor cancelling it.
//
// Example:
//
//	cmd, err := NewUpdatePickupRequestCommand(requestID, kernel.RoleDeliveryAgent, pickup.StatusPickedUp)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	handler := NewUpdatePickupRequestCommandHandler(uowFactory, lifecycle)
//	request, err := handler.Handle(ctx, cmd)
type UpdatePickupRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorRole kernel.Role
	target    pickup.Status

	guard guard.ConstructorGuard
}

// NewUpdatePickupRequestCommand creates a command to transition a pickup request.
// Validates the identifier, the acting role, and the target status.
func NewUpdatePickupRequestCommand(
	requestID kernel.UUID,
	actorRole kernel.Role,
	target pickup.Status,
) (UpdatePickupRequestCommand, error) {
	cmd := UpdatePickupRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorRole(actorRole),
		cmd.setTarget(target),
	); err != nil {
		return UpdatePickupRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePickupRequestCommandIsNotConstructed if validation fails.
func (c UpdatePickupRequestCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickupRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the pickup request to transition.
func (c UpdatePickupRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ActorRole returns the role of the actor driving the transition.
func (c UpdatePickupRequestCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Target returns the requested target status.
func (c UpdatePickupRequestCommand) Target() pickup.Status {
	return c.target
}

func (c *UpdatePickupRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *UpdatePickupRequestCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorRole = actorRole
	return nil
}

func (c *UpdatePickupRequestCommand) setTarget(target pickup.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
