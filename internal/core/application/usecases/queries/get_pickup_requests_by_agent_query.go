// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/pkg/guard"
)

var (
	ErrGetPickupRequestsByAgentQueryIsNotConstructed = errors.New(
		"GetPickupRequestsByAgentQuery must be created via NewGetPickupRequestsByAgentQuery constructor",
	)
)

// GetPickupRequestsByAgentQuery retrieves all pickup requests assigned to a
// delivery agent, in any status. An agent with no requests yields an empty
// result, not an error.
//
// Example:
//
//	query, err := NewGetPickupRequestsByAgentQuery(agentID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetPickupRequestsByAgentQueryHandler(db)
//	requests, err := handler.Handle(ctx, query)
type GetPickupRequestsByAgentQuery struct {
	deliveryAgentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPickupRequestsByAgentQuery creates a query for an agent's pickup requests.
// The agent identifier is required and validated.
func NewGetPickupRequestsByAgentQuery(deliveryAgentID kernel.UUID) (GetPickupRequestsByAgentQuery, error) {
	if err := deliveryAgentID.Validate(); err != nil {
		return GetPickupRequestsByAgentQuery{}, err
	}

	return GetPickupRequestsByAgentQuery{
		deliveryAgentID: deliveryAgentID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPickupRequestsByAgentQueryIsNotConstructed if validation fails.
func (q GetPickupRequestsByAgentQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupRequestsByAgentQueryIsNotConstructed)
}

// DeliveryAgentID returns the identifier of the agent whose requests are listed.
func (q GetPickupRequestsByAgentQuery) DeliveryAgentID() kernel.UUID {
	return q.deliveryAgentID
}

// PickupRequestQueryResponse represents one pickup request in the read model,
// shared by the by-agent and by-listing queries.
type PickupRequestQueryResponse struct {
	ID              kernel.UUID
	ListingID       kernel.UUID
	SellerID        kernel.UUID
	DeliveryAgentID kernel.UUID
	Status          string
	CreatedAt       time.Time
}
