package queries

import (
	"context"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetListingsByStatusQueryHandler retrieves listings filtered by status from
// the database.
type GetListingsByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetListingsByStatusQueryHandler creates a handler for status-filtered listing queries.
// Requires a GORM database connection for query execution.
func NewGetListingsByStatusQueryHandler(db *gorm.DB) GetListingsByStatusQueryHandler {
	return GetListingsByStatusQueryHandler{db: db}
}

// Handle executes the query and returns matching listings ordered by creation
// time. Returns an empty slice when no listing is in the requested status.
func (h GetListingsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetListingsByStatusQuery,
) ([]ListingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	listings := make([]ListingQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			product_type,
			brand,
			condition,
			status,
			final_price,
			created_at
		FROM listings
		WHERE status = ?
		ORDER BY created_at
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			sellerID   uuid.UUID
			condition  int
			status     int
			finalPrice *int64
			createdAt  time.Time
		)
		var resp ListingQueryResponse

		if err = rows.Scan(
			&id,
			&sellerID,
			&resp.ProductType,
			&resp.Brand,
			&condition,
			&status,
			&finalPrice,
			&createdAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		resp.Condition = listing.Condition(condition).String()
		resp.Status = listing.Status(status).String()
		resp.FinalPrice = finalPrice
		resp.CreatedAt = createdAt

		listings = append(listings, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
