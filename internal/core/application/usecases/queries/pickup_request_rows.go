package queries

import (
	"database/sql"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"

	"github.com/google/uuid"
)

// scanPickupRequestRows maps raw pickup request rows into the shared read
// model. Both pickup request queries select the same column set.
func scanPickupRequestRows(rows *sql.Rows) ([]PickupRequestQueryResponse, error) {
	requests := make([]PickupRequestQueryResponse, 0)

	for rows.Next() {
		var (
			id        uuid.UUID
			listingID uuid.UUID
			sellerID  uuid.UUID
			agentID   uuid.UUID
			status    int
			createdAt time.Time
		)

		if err := rows.Scan(&id, &listingID, &sellerID, &agentID, &status, &createdAt); err != nil {
			return nil, err
		}

		resp := PickupRequestQueryResponse{
			Status:    pickup.Status(status).String(),
			CreatedAt: createdAt,
		}

		var err error
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ListingID, err = kernel.UUIDFromBytes(listingID[:]); err != nil {
			return nil, err
		}
		if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		if resp.DeliveryAgentID, err = kernel.UUIDFromBytes(agentID[:]); err != nil {
			return nil, err
		}

		requests = append(requests, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
