package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"relist/internal/core/application/usecases/commands"
	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"
	"relist/internal/core/domain/services"
	"relist/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStalePickupRepo struct{ mock.Mock }

func (m *MockStalePickupRepo) Add(_ context.Context, _ *pickup.PickupRequest) error {
	return errors.New("not implemented in mock")
}
func (m *MockStalePickupRepo) Update(ctx context.Context, r *pickup.PickupRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockStalePickupRepo) Get(_ context.Context, _ kernel.UUID) (*pickup.PickupRequest, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStalePickupRepo) GetActiveByListingID(
	_ context.Context, _ kernel.UUID,
) (*pickup.PickupRequest, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStalePickupRepo) GetAllPendingBefore(
	ctx context.Context, cutoff time.Time,
) ([]*pickup.PickupRequest, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pickup.PickupRequest), args.Error(1)
}

type MockStalePickupUoW struct{ mock.Mock }

func (m *MockStalePickupUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStalePickupUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStalePickupUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStalePickupUoW) PickupRequestRepository() ports.PickupRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupRequestRepository)
}

type MockStalePickupUoWFactory struct{ mock.Mock }

func (m *MockStalePickupUoWFactory) Create() commands.PickupUoW {
	args := m.Called()
	return args.Get(0).(commands.PickupUoW)
}

func createPendingRequest(t *testing.T) *pickup.PickupRequest {
	t.Helper()
	r, err := pickup.NewPickupRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return r
}

func TestCancelStalePickupsCommandHandler_Handle_CancelsAllStale(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().Add(-48 * time.Hour)
	cmd, err := commands.NewCancelStalePickupsCommand(cutoff)
	require.NoError(t, err)

	stale := []*pickup.PickupRequest{
		createPendingRequest(t),
		createPendingRequest(t),
		createPendingRequest(t),
	}

	pickupRepo := new(MockStalePickupRepo)
	uow := new(MockStalePickupUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRequestRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetAllPendingBefore", mock.Anything, cutoff).Return(stale, nil).Once(),
		pickupRepo.On("Update", mock.Anything, stale[0]).Return(nil).Once(),
		pickupRepo.On("Update", mock.Anything, stale[1]).Return(nil).Once(),
		pickupRepo.On("Update", mock.Anything, stale[2]).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStalePickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStalePickupsCommandHandler(factory, services.NewLifecycle())
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, cancelled)
	for _, r := range stale {
		assert.Equal(t, pickup.StatusCancelled, r.Status())
	}
	pickupRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelStalePickupsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().Add(-48 * time.Hour)
	cmd, err := commands.NewCancelStalePickupsCommand(cutoff)
	require.NoError(t, err)

	pickupRepo := new(MockStalePickupRepo)
	uow := new(MockStalePickupUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRequestRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetAllPendingBefore", mock.Anything, cutoff).
			Return([]*pickup.PickupRequest{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStalePickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStalePickupsCommandHandler(factory, services.NewLifecycle())
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	pickupRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelStalePickupsCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().Add(-48 * time.Hour)
	cmd, err := commands.NewCancelStalePickupsCommand(cutoff)
	require.NoError(t, err)

	pickupRepo := new(MockStalePickupRepo)
	uow := new(MockStalePickupUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRequestRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetAllPendingBefore", mock.Anything, cutoff).
			Return(nil, errors.New("query failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStalePickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStalePickupsCommandHandler(factory, services.NewLifecycle())
	cancelled, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, 0, cancelled)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCancelStalePickupsCommandHandler_Handle_UpdateErrorAbortsBatch(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now().Add(-48 * time.Hour)
	cmd, err := commands.NewCancelStalePickupsCommand(cutoff)
	require.NoError(t, err)

	stale := []*pickup.PickupRequest{
		createPendingRequest(t),
		createPendingRequest(t),
	}

	pickupRepo := new(MockStalePickupRepo)
	uow := new(MockStalePickupUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRequestRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetAllPendingBefore", mock.Anything, cutoff).Return(stale, nil).Once(),
		pickupRepo.On("Update", mock.Anything, stale[0]).Return(ports.ErrStaleWrite).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStalePickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStalePickupsCommandHandler(factory, services.NewLifecycle())
	cancelled, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrStaleWrite)
	assert.Equal(t, 0, cancelled)
	pickupRepo.AssertNotCalled(t, "Update", mock.Anything, stale[1])
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	pickupRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelStalePickupsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockStalePickupUoWFactory)
	h := commands.NewCancelStalePickupsCommandHandler(factory, services.NewLifecycle())
	cancelled, err := h.Handle(ctx, commands.CancelStalePickupsCommand{})
	require.Error(t, err)
	assert.Equal(t, 0, cancelled)
	factory.AssertNotCalled(t, "Create")
}
