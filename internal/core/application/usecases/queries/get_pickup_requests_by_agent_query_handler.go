package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPickupRequestsByAgentQueryHandler retrieves an agent's pickup requests
// from the database. Used by agent-facing views to show the current workload
// and its history.
type GetPickupRequestsByAgentQueryHandler struct {
	db *gorm.DB
}

// NewGetPickupRequestsByAgentQueryHandler creates a handler for agent pickup queries.
// Requires a GORM database connection for query execution.
func NewGetPickupRequestsByAgentQueryHandler(db *gorm.DB) GetPickupRequestsByAgentQueryHandler {
	return GetPickupRequestsByAgentQueryHandler{db: db}
}

// Handle executes the query and returns the agent's pickup requests ordered
// by creation time. Returns an empty slice when the agent has none.
func (h GetPickupRequestsByAgentQueryHandler) Handle(
	ctx context.Context,
	query GetPickupRequestsByAgentQuery,
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
		WHERE delivery_agent_id = ?
		ORDER BY created_at
	`, query.DeliveryAgentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPickupRequestRows(rows)
}
