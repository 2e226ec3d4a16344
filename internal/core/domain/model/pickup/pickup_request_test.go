package pickup_test

import (
	"testing"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRequest(t *testing.T) *pickup.PickupRequest {
	t.Helper()
	r, err := pickup.NewPickupRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
	)
	require.NoError(t, err)
	return r
}

func TestNewPickupRequest(t *testing.T) {
	t.Run("should create request with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		listingID := kernel.NewUUID()
		sellerID := kernel.NewUUID()
		agentID := kernel.NewUUID()

		r, err := pickup.NewPickupRequest(id, listingID, sellerID, agentID)

		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, id, r.ID())
		assert.Equal(t, listingID, r.ListingID())
		assert.Equal(t, sellerID, r.SellerID())
		assert.Equal(t, agentID, r.DeliveryAgentID())
		assert.Equal(t, pickup.StatusPending, r.Status())
		assert.True(t, r.IsActive())
		assert.Equal(t, 1, r.Version())
		assert.False(t, r.CreatedAt().IsZero())
		require.NoError(t, r.Validate())
	})

	t.Run("should reject missing identifiers", func(t *testing.T) {
		valid := kernel.NewUUID()
		testCases := []struct {
			name                             string
			id, listingID, sellerID, agentID kernel.UUID
		}{
			{"missing id", kernel.UUID{}, valid, valid, valid},
			{"missing listing id", valid, kernel.UUID{}, valid, valid},
			{"missing seller id", valid, valid, kernel.UUID{}, valid},
			{"missing delivery agent id", valid, valid, valid, kernel.UUID{}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				r, err := pickup.NewPickupRequest(tc.id, tc.listingID, tc.sellerID, tc.agentID)

				require.Error(t, err)
				assert.Nil(t, r)
			})
		}
	})
}

func TestRestorePickupRequest(t *testing.T) {
	t.Run("should restore request with full state", func(t *testing.T) {
		id := kernel.NewUUID()
		listingID := kernel.NewUUID()
		sellerID := kernel.NewUUID()
		agentID := kernel.NewUUID()
		createdAt := time.Now().UTC().Add(-time.Hour)
		updatedAt := time.Now().UTC()

		r, err := pickup.RestorePickupRequest(
			id, listingID, sellerID, agentID,
			pickup.StatusAccepted, 3, createdAt, updatedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, id, r.ID())
		assert.Equal(t, pickup.StatusAccepted, r.Status())
		assert.Equal(t, 3, r.Version())
		assert.Equal(t, createdAt, r.CreatedAt())
		assert.Equal(t, updatedAt, r.UpdatedAt())
		require.NoError(t, r.Validate())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := pickup.RestorePickupRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			pickup.StatusUnknown, 1, time.Now(), time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status")
	})
}

func TestPickupRequest_Validate(t *testing.T) {
	t.Run("should reject nil and zero-value requests", func(t *testing.T) {
		var nilRequest *pickup.PickupRequest
		require.ErrorIs(t, nilRequest.Validate(), pickup.ErrPickupRequestIsNotConstructed)

		zeroRequest := &pickup.PickupRequest{}
		require.ErrorIs(t, zeroRequest.Validate(), pickup.ErrPickupRequestIsNotConstructed)
	})
}

func TestPickupRequest_IsEqual(t *testing.T) {
	t.Run("should compare by identifier", func(t *testing.T) {
		r1 := createTestRequest(t)
		r2 := createTestRequest(t)

		assert.True(t, r1.IsEqual(r1))
		assert.False(t, r1.IsEqual(r2))
		assert.False(t, r1.IsEqual(nil))
	})
}

func TestPickupRequest_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path to picked up", func(t *testing.T) {
		r := createTestRequest(t)

		require.NoError(t, r.TransitionTo(pickup.StatusAccepted))
		require.NoError(t, r.TransitionTo(pickup.StatusPickedUp))

		assert.Equal(t, pickup.StatusPickedUp, r.Status())
		assert.False(t, r.IsActive())
	})

	t.Run("should cancel from pending and accepted", func(t *testing.T) {
		pendingRequest := createTestRequest(t)
		require.NoError(t, pendingRequest.TransitionTo(pickup.StatusCancelled))
		assert.Equal(t, pickup.StatusCancelled, pendingRequest.Status())

		acceptedRequest := createTestRequest(t)
		require.NoError(t, acceptedRequest.TransitionTo(pickup.StatusAccepted))
		require.NoError(t, acceptedRequest.TransitionTo(pickup.StatusCancelled))
		assert.Equal(t, pickup.StatusCancelled, acceptedRequest.Status())
	})

	t.Run("should treat same-status transition as no-op", func(t *testing.T) {
		r := createTestRequest(t)
		require.NoError(t, r.TransitionTo(pickup.StatusAccepted))
		updatedAt := r.UpdatedAt()

		err := r.TransitionTo(pickup.StatusAccepted)

		require.NoError(t, err)
		assert.Equal(t, pickup.StatusAccepted, r.Status())
		assert.Equal(t, updatedAt, r.UpdatedAt(), "no-op transition should not touch the request")
	})

	t.Run("should treat same-status transition on terminal request as no-op", func(t *testing.T) {
		r := createTestRequest(t)
		require.NoError(t, r.TransitionTo(pickup.StatusCancelled))

		require.NoError(t, r.TransitionTo(pickup.StatusCancelled))
		assert.Equal(t, pickup.StatusCancelled, r.Status())
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		r := createTestRequest(t)

		err := r.TransitionTo(pickup.StatusUnknown)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})

	t.Run("should reject pickup before acceptance", func(t *testing.T) {
		r := createTestRequest(t)

		err := r.TransitionTo(pickup.StatusPickedUp)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot transition pickup request from pending to picked_up")
		assert.Equal(t, pickup.StatusPending, r.Status(), "failed transition should leave status unchanged")
	})

	t.Run("should reject cancellation after pickup", func(t *testing.T) {
		r := createTestRequest(t)
		require.NoError(t, r.TransitionTo(pickup.StatusAccepted))
		require.NoError(t, r.TransitionTo(pickup.StatusPickedUp))

		err := r.TransitionTo(pickup.StatusCancelled)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal")
		assert.Equal(t, pickup.StatusPickedUp, r.Status())
	})

	t.Run("should reject reopening a cancelled request", func(t *testing.T) {
		r := createTestRequest(t)
		require.NoError(t, r.TransitionTo(pickup.StatusCancelled))

		err := r.TransitionTo(pickup.StatusAccepted)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal")
	})
}
