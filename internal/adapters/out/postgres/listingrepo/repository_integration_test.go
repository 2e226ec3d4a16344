package listingrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"relist/internal/adapters/out/postgres/listingrepo"
	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/listing"
	"relist/internal/core/ports"
	"relist/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ListingRepositoryIntegrationTestSuite provides integration tests for ListingRepository
// using PostgreSQL containers to verify database persistence behavior.
type ListingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *listingrepo.GormListingRepository
	tracker    *MockAggregateTracker
}

func (suite *ListingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&listingrepo.ListingDTO{}))
}

func (suite *ListingRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE listings").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = listingrepo.NewGormListingRepository(suite.db, suite.tracker)
}

func (suite *ListingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListingRepositoryIntegrationTestSuite) TestAdd_ValidListing_Success() {
	ctx := context.Background()

	// Create valid listing
	testListing := suite.createTestListing()

	// Set expectations on mock
	suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()

	// Add listing to repository
	err := suite.repository.Add(ctx, testListing)
	suite.Require().NoError(err)

	// Verify listing was persisted
	suite.assertListingCount(1)

	// Assert that all expectations were met
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestGet_ExistingListing_ReturnsListing() {
	ctx := context.Background()

	// Create and add listing
	original := suite.createTestListing()

	// Set expectations for Add operation
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()

	err := suite.repository.Add(ctx, original)
	suite.Require().NoError(err)

	// Retrieve listing
	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	// Verify listing details
	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.SellerID(), retrieved.SellerID())
	suite.Equal("jacket", retrieved.ProductType())
	suite.Equal("Acme", retrieved.Brand())
	suite.Equal(listing.ConditionGentlyUsed, retrieved.Condition())
	suite.Equal(listing.StatusRequested, retrieved.Status())
	suite.Equal(0, retrieved.RedesignCount())
	suite.Equal(1, retrieved.Version())
	suite.False(retrieved.HasChecklist())
	suite.Nil(retrieved.FinalPrice())

	// Assert that all expectations were met
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestGet_NonExistentListing_ReturnsNotFoundError() {
	ctx := context.Background()

	// Try to get non-existent listing
	nonExistentID := kernel.NewUUID()
	retrieved, err := suite.repository.Get(ctx, nonExistentID)

	// Verify error and result
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	// Assert no unexpected calls
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_StatusTransitions() {
	testCases := []struct {
		name   string
		apply  func(l *listing.Listing) error
		verify func(l *listing.Listing)
	}{
		{
			name: "requested to assigned",
			apply: func(l *listing.Listing) error {
				return l.TransitionTo(listing.StatusAssigned)
			},
			verify: func(l *listing.Listing) {
				suite.Equal(listing.StatusAssigned, l.Status())
			},
		},
		{
			name: "through pickup into review with checklist",
			apply: func(l *listing.Listing) error {
				if err := l.TransitionTo(listing.StatusAssigned); err != nil {
					return err
				}
				if err := l.TransitionTo(listing.StatusPickedUp); err != nil {
					return err
				}
				if err := l.SetChecklist(map[string]string{"zipper": "working", "lining": "stained"}); err != nil {
					return err
				}
				return l.TransitionTo(listing.StatusUnderReview)
			},
			verify: func(l *listing.Listing) {
				suite.Equal(listing.StatusUnderReview, l.Status())
				suite.True(l.HasChecklist())
				suite.Equal("working", l.Checklist()["zipper"])
			},
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			testListing := suite.createTestListing()
			suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()
			err := suite.repository.Add(ctx, testListing)
			suite.Require().NoError(err)

			// Apply domain operations and persist
			err = tc.apply(testListing)
			suite.Require().NoError(err)

			suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()
			err = suite.repository.Update(ctx, testListing)
			suite.Require().NoError(err)

			// Retrieve and verify updated listing
			retrieved, err := suite.repository.Get(ctx, testListing.ID())
			suite.Require().NoError(err)
			tc.verify(retrieved)

			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	testListing := suite.createTestListing()
	suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()
	err := suite.repository.Add(ctx, testListing)
	suite.Require().NoError(err)

	err = testListing.TransitionTo(listing.StatusAssigned)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()
	err = suite.repository.Update(ctx, testListing)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testListing.ID())
	suite.Require().NoError(err)
	suite.Equal(2, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStaleWrite() {
	ctx := context.Background()

	testListing := suite.createTestListing()
	suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Once()
	err := suite.repository.Add(ctx, testListing)
	suite.Require().NoError(err)

	// Two readers load the same row
	first, err := suite.repository.Get(ctx, testListing.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testListing.ID())
	suite.Require().NoError(err)

	// First write succeeds
	err = first.TransitionTo(listing.StatusAssigned)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	err = suite.repository.Update(ctx, first)
	suite.Require().NoError(err)

	// Second write is based on the stale version
	err = second.TransitionTo(listing.StatusAssigned)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", second.ID(), second).Once()
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, ports.ErrStaleWrite)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestUpdate_NonExistentListing_ReturnsNotFoundError() {
	ctx := context.Background()

	// Create listing that doesn't exist in database
	nonExistent := suite.createTestListing()

	suite.tracker.On("TrackAggregate", nonExistent.ID(), nonExistent).Once()

	// Try to update non-existent listing
	err := suite.repository.Update(ctx, nonExistent)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersByStatus() {
	ctx := context.Background()

	// Expect a TrackAggregate call per persisted listing
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	requested1 := suite.createTestListing()
	requested2 := suite.createTestListing()
	assigned := suite.createTestListing()
	suite.Require().NoError(assigned.TransitionTo(listing.StatusAssigned))

	suite.Require().NoError(suite.repository.Add(ctx, requested1))
	suite.Require().NoError(suite.repository.Add(ctx, requested2))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	// Filter on requested
	requested, err := suite.repository.GetAllInStatus(ctx, listing.StatusRequested)
	suite.Require().NoError(err)
	suite.Len(requested, 2)
	for _, l := range requested {
		suite.Equal(listing.StatusRequested, l.Status())
	}

	// Filter on assigned
	assignedListings, err := suite.repository.GetAllInStatus(ctx, listing.StatusAssigned)
	suite.Require().NoError(err)
	suite.Len(assignedListings, 1)
	suite.Equal(assigned.ID(), assignedListings[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ListingRepositoryIntegrationTestSuite) TestGetAllInStatus_NoMatches_ReturnsEmptySlice() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestListing()))

	listed, err := suite.repository.GetAllInStatus(ctx, listing.StatusListed)
	suite.Require().NoError(err)
	suite.Empty(listed)

	suite.tracker.AssertExpectations(suite.T())
}

// TestListingRepository_ChecklistAndPriceRoundTrip verifies jsonb checklist and
// final price survive a full persistence cycle through the review flow.
func (suite *ListingRepositoryIntegrationTestSuite) TestListingRepository_ChecklistAndPriceRoundTrip() {
	ctx := context.Background()

	testListing := suite.createTestListing()
	suite.tracker.On("TrackAggregate", testListing.ID(), testListing).Times(2)

	err := suite.repository.Add(ctx, testListing)
	suite.Require().NoError(err)

	suite.Require().NoError(testListing.TransitionTo(listing.StatusAssigned))
	suite.Require().NoError(testListing.TransitionTo(listing.StatusPickedUp))
	suite.Require().NoError(testListing.SetChecklist(map[string]string{
		"zipper":  "working",
		"buttons": "one missing",
	}))
	suite.Require().NoError(testListing.TransitionTo(listing.StatusUnderReview))
	suite.Require().NoError(testListing.SetFinalPrice(4500))
	suite.Require().NoError(testListing.TransitionTo(listing.StatusListed))

	err = suite.repository.Update(ctx, testListing)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testListing.ID())
	suite.Require().NoError(err)
	suite.Equal(listing.StatusListed, retrieved.Status())
	suite.Equal(map[string]string{"zipper": "working", "buttons": "one missing"}, retrieved.Checklist())
	suite.Require().NotNil(retrieved.FinalPrice())
	suite.Equal(int64(4500), *retrieved.FinalPrice())

	suite.tracker.AssertExpectations(suite.T())
}

// TestListingRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *ListingRepositoryIntegrationTestSuite) TestListingRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent listing",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// createTestListing creates a basic test listing with default values.
func (suite *ListingRepositoryIntegrationTestSuite) createTestListing() *listing.Listing {
	testListing, err := listing.NewListing(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"jacket",
		"Acme",
		listing.ConditionGentlyUsed,
		"navy blue, small tear on left sleeve",
	)
	suite.Require().NoError(err)
	return testListing
}

// assertListingCount verifies the number of listings in the database.
func (suite *ListingRepositoryIntegrationTestSuite) assertListingCount(expected int) {
	var count int64
	err := suite.db.Model(&listingrepo.ListingDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestListingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ListingRepositoryIntegrationTestSuite))
}
