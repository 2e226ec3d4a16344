package commands

import (
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/pkg/guard"
)

var (
	ErrCreatePickupRequestCommandIsNotConstructed = errors.New(
		"CreatePickupRequestCommand must be created via NewCreatePickupRequestCommand constructor",
	)
)

// CreatePickupRequestCommand represents the assignment of a listing to a
// delivery agent for physical collection. The resulting request starts in
// pending status and the listing advances to assigned.
//
// Example:
//
//	cmd, err := NewCreatePickupRequestCommand(requestID, listingID, sellerID, agentID)
//	if err != nil {
//	    return fmt.Errorf("invalid pickup request data: %w", err)
//	}
//
//	handler := NewCreatePickupRequestCommandHandler(uowFactory, lifecycle)
//	request, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrDuplicateActiveRequest) {
//	    // the listing already has a pending or accepted request
//	}
type CreatePickupRequestCommand struct { //nolint:recvcheck //using for validation
	requestID       kernel.UUID
	listingID       kernel.UUID
	sellerID        kernel.UUID
	deliveryAgentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePickupRequestCommand creates a command to assign a delivery agent
// to a listing. All four identifiers are required and validated.
func NewCreatePickupRequestCommand(
	requestID kernel.UUID,
	listingID kernel.UUID,
	sellerID kernel.UUID,
	deliveryAgentID kernel.UUID,
) (CreatePickupRequestCommand, error) {
	cmd := CreatePickupRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setListingID(listingID),
		cmd.setSellerID(sellerID),
		cmd.setDeliveryAgentID(deliveryAgentID),
	); err != nil {
		return CreatePickupRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePickupRequestCommandIsNotConstructed if validation fails.
func (c CreatePickupRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier for the pickup request.
func (c CreatePickupRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ListingID returns the identifier of the listing to collect.
func (c CreatePickupRequestCommand) ListingID() kernel.UUID {
	return c.listingID
}

// SellerID returns the identifier of the seller holding the item.
func (c CreatePickupRequestCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// DeliveryAgentID returns the identifier of the assigned delivery agent.
func (c CreatePickupRequestCommand) DeliveryAgentID() kernel.UUID {
	return c.deliveryAgentID
}

func (c *CreatePickupRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *CreatePickupRequestCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *CreatePickupRequestCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreatePickupRequestCommand) setDeliveryAgentID(deliveryAgentID kernel.UUID) error {
	if err := deliveryAgentID.Validate(); err != nil {
		return err
	}
	c.deliveryAgentID = deliveryAgentID
	return nil
}
