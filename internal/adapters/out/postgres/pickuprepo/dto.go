// Package pickuprepo provides data transfer objects and mapping functions for
// pickup request persistence. This package implements the repository pattern
// for the pickup request domain aggregate, handling the conversion between
// domain entities and database representations.
package pickuprepo

import (
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// PickupRequestDTO represents the database structure for persisting pickup
// request aggregates. Indexed by listing and agent for the active-request
// lookup and the agent workload view. The version column carries the
// optimistic-concurrency revision checked on every update.
type PickupRequestDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListingID       uuid.UUID `gorm:"type:uuid;index"`
	SellerID        uuid.UUID `gorm:"type:uuid;index"`
	DeliveryAgentID uuid.UUID `gorm:"type:uuid;index"`
	Status          int       `gorm:"index"`
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for pickup request entities.
// Overrides GORM's default naming convention to use "pickup_requests".
func (PickupRequestDTO) TableName() string {
	return "pickup_requests"
}

// fromDomain converts a pickup request domain aggregate to its database representation.
func fromDomain(r *pickup.PickupRequest) PickupRequestDTO {
	return PickupRequestDTO{
		ID:              r.ID().Bytes(),
		ListingID:       r.ListingID().Bytes(),
		SellerID:        r.SellerID().Bytes(),
		DeliveryAgentID: r.DeliveryAgentID().Bytes(),
		Status:          int(r.Status()),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a pickup request domain aggregate
// using RestorePickupRequest.
func toDomain(dto PickupRequestDTO) (*pickup.PickupRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	deliveryAgentID, err := kernel.UUIDFromBytes(dto.DeliveryAgentID[:])
	if err != nil {
		return nil, err
	}

	return pickup.RestorePickupRequest(
		id,
		listingID,
		sellerID,
		deliveryAgentID,
		pickup.Status(dto.Status),
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
