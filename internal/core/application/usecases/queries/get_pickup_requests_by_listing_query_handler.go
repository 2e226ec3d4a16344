package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPickupRequestsByListingQueryHandler retrieves a listing's pickup request
// history from the database.
type GetPickupRequestsByListingQueryHandler struct {
	db *gorm.DB
}

// NewGetPickupRequestsByListingQueryHandler creates a handler for listing pickup queries.
// Requires a GORM database connection for query execution.
func NewGetPickupRequestsByListingQueryHandler(db *gorm.DB) GetPickupRequestsByListingQueryHandler {
	return GetPickupRequestsByListingQueryHandler{db: db}
}

// Handle executes the query and returns the listing's pickup requests ordered
// by creation time. Returns an empty slice when the listing has none.
func (h GetPickupRequestsByListingQueryHandler) Handle(
	ctx context.Context,
	query GetPickupRequestsByListingQuery,
) ([]PickupRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			listing_id,
			seller_id,
			delivery_agent_id,
			status,
			created_at
		FROM pickup_requests
		WHERE listing_id = ?
		ORDER BY created_at
	`, query.ListingID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPickupRequestRows(rows)
}
