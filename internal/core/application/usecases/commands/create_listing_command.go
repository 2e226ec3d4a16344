package commands

import (
	"errors"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/pkg/errs"
	"relist/internal/pkg/guard"
)

var (
	ErrCreateListingCommandIsNotConstructed = errors.New(
		"CreateListingCommand must be created via NewCreateListingCommand constructor",
	)
)

// CreateListingCommand represents a seller submitting a second-hand item into
// the pipeline. The resulting listing starts in requested status.
//
// Example:
//
//	listingID := kernel.NewUUID()
//	cmd, err := NewCreateListingCommand(listingID, sellerID, "jacket", "Acme", listing.ConditionGentlyUsed, "blue denim")
//	if err != nil {
//	    return fmt.Errorf("invalid listing data: %w", err)
//	}
//
//	handler := NewCreateListingCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create listing: %w", err)
//	}
type CreateListingCommand struct { //nolint:recvcheck //using for validation
	listingID   kernel.UUID
	sellerID    kernel.UUID
	productType string
	brand       string
	condition   listing.Condition
	description string

	guard guard.ConstructorGuard
}

// NewCreateListingCommand creates a command to register a new listing.
// Validates the identifiers, the product type, and the declared condition.
func NewCreateListingCommand(
	listingID kernel.UUID,
	sellerID kernel.UUID,
	productType string,
	brand string,
	condition listing.Condition,
	description string,
) (CreateListingCommand, error) {
	cmd := CreateListingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setListingID(listingID),
		cmd.setSellerID(sellerID),
		cmd.setProductType(productType),
		cmd.setCondition(condition),
	); err != nil {
		return CreateListingCommand{}, err
	}

	cmd.brand = brand
	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateListingCommandIsNotConstructed if validation fails.
func (c CreateListingCommand) Validate() error {
	return c.guard.Validate(ErrCreateListingCommandIsNotConstructed)
}

// ListingID returns the unique identifier for the listing.
func (c CreateListingCommand) ListingID() kernel.UUID {
	return c.listingID
}

// SellerID returns the identifier of the submitting seller.
func (c CreateListingCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// ProductType returns the item category.
func (c CreateListingCommand) ProductType() string {
	return c.productType
}

// Brand returns the item brand.
func (c CreateListingCommand) Brand() string {
	return c.brand
}

// Condition returns the seller-declared physical condition.
func (c CreateListingCommand) Condition() listing.Condition {
	return c.condition
}

// Description returns the free-form item description.
func (c CreateListingCommand) Description() string {
	return c.description
}

func (c *CreateListingCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *CreateListingCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateListingCommand) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("product type")
	}
	c.productType = productType
	return nil
}

func (c *CreateListingCommand) setCondition(condition listing.Condition) error {
	if err := condition.Validate(); err != nil {
		return err
	}
	c.condition = condition
	return nil
}
