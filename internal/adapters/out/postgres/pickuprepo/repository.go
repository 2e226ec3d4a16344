package pickuprepo

import (
	"context"
	"errors"
	"time"

	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/ports"
	"relist/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickupRequestRepository implements PickupRequestRepository using GORM.
type GormPickupRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickupRequestRepository creates a new GORM pickup request repository.
func NewGormPickupRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupRequestRepository {
	return &GormPickupRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pickup request to the database.
func (r *GormPickupRequestRepository) Add(ctx context.Context, aggregate *pickup.PickupRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing pickup request to the database with a revision check.
// Fails with ports.ErrStaleWrite when a concurrent writer advanced the stored
// version since the aggregate was loaded.
func (r *GormPickupRequestRepository) Update(ctx context.Context, aggregate *pickup.PickupRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&PickupRequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.classifyMissedUpdate(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// classifyMissedUpdate distinguishes a vanished row from a version conflict.
func (r *GormPickupRequestRepository) classifyMissedUpdate(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&PickupRequestDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("pickup request", id.String())
	}
	return ports.ErrStaleWrite
}

// Get retrieves a pickup request by ID.
func (r *GormPickupRequestRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.PickupRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickup request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByListingID retrieves the pending or accepted request for a listing.
// At most one active request exists per listing at a time.
func (r *GormPickupRequestRepository) GetActiveByListingID(
	ctx context.Context,
	listingID kernel.UUID,
) (*pickup.PickupRequest, error) {
	if err := listingID.Validate(); err != nil {
		return nil, err
	}

	var dto PickupRequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "listing_id = ? AND status IN ?",
			listingID.Bytes(),
			[]int{int(pickup.StatusPending), int(pickup.StatusAccepted)},
		).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active pickup request", listingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingBefore retrieves all requests still pending that were created
// before the cutoff.
func (r *GormPickupRequestRepository) GetAllPendingBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*pickup.PickupRequest, error) {
	var dtos []PickupRequestDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", int(pickup.StatusPending), cutoff).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*pickup.PickupRequest, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}
