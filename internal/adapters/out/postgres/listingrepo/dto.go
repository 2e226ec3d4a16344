// Package listingrepo provides data transfer objects and mapping functions for listing persistence.
// This package implements the repository pattern for the listing domain aggregate, handling
// the conversion between domain entities and database representations.
package listingrepo

import (
	"encoding/json"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"

	"github.com/google/uuid"
)

// ListingDTO represents the database structure for persisting listing aggregates.
// Maps listing domain entities to relational database tables with indexing for
// efficient querying by seller and status. The version column carries the
// optimistic-concurrency revision checked on every update.
type ListingDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID      uuid.UUID `gorm:"type:uuid;index"`
	ProductType   string
	Brand         string
	Condition     int
	Description   string
	Checklist     []byte `gorm:"type:jsonb"`
	FinalPrice    *int64
	Status        int `gorm:"index"`
	RedesignCount int
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for listing entities.
// Overrides GORM's default naming convention to use "listings".
func (ListingDTO) TableName() string {
	return "listings"
}

// fromDomain converts a listing domain aggregate to its database representation.
// The inspection checklist is serialized to JSON; an unset checklist is stored as NULL.
func fromDomain(l *listing.Listing) (ListingDTO, error) {
	var checklist []byte
	if l.HasChecklist() {
		raw, err := json.Marshal(l.Checklist())
		if err != nil {
			return ListingDTO{}, err
		}
		checklist = raw
	}

	return ListingDTO{
		ID:            l.ID().Bytes(),
		SellerID:      l.SellerID().Bytes(),
		ProductType:   l.ProductType(),
		Brand:         l.Brand(),
		Condition:     int(l.Condition()),
		Description:   l.Description(),
		Checklist:     checklist,
		FinalPrice:    l.FinalPrice(),
		Status:        int(l.Status()),
		RedesignCount: l.RedesignCount(),
		Version:       l.Version(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to a listing domain aggregate.
// Reconstructs the complete aggregate including checklist and pricing using RestoreListing.
func toDomain(dto ListingDTO) (*listing.Listing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var checklist map[string]string
	if len(dto.Checklist) > 0 {
		if err = json.Unmarshal(dto.Checklist, &checklist); err != nil {
			return nil, err
		}
	}

	return listing.RestoreListing(
		id,
		sellerID,
		dto.ProductType,
		dto.Brand,
		listing.Condition(dto.Condition),
		dto.Description,
		checklist,
		dto.FinalPrice,
		listing.Status(dto.Status),
		dto.RedesignCount,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
