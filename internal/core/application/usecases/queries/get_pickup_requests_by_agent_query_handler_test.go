package queries_test

import (
	"context"
	"testing"
	"time"

	"relist/internal/adapters/out/postgres/pickuprepo"
	"relist/internal/core/application/usecases/queries"
	"relist/internal/core/domain/model/kernel"
	"relist/internal/core/domain/model/pickup"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPickupRequestsByAgentQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPickupRequestsByAgentQueryHandler
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&pickuprepo.PickupRequestDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetPickupRequestsByAgentQueryHandler(db)
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE pickup_requests CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetPickupRequestsByAgentQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TestHandle_FiltersByAgent() {
	agentID := kernel.NewUUID()
	otherAgentID := kernel.NewUUID()

	first := suite.saveRequest(agentID)
	second := suite.saveRequest(agentID)
	suite.saveRequest(otherAgentID)

	query, err := queries.NewGetPickupRequestsByAgentQuery(agentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	for _, r := range result {
		suite.Equal(agentID, r.DeliveryAgentID)
		suite.Equal("pending", r.Status)
	}
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TestHandle_IncludesAllStatuses() {
	agentID := kernel.NewUUID()

	suite.saveRequest(agentID)

	accepted := suite.saveRequest(agentID)
	suite.Require().NoError(accepted.TransitionTo(pickup.StatusAccepted))
	suite.updateRequest(accepted)

	cancelled := suite.saveRequest(agentID)
	suite.Require().NoError(cancelled.TransitionTo(pickup.StatusCancelled))
	suite.updateRequest(cancelled)

	query, err := queries.NewGetPickupRequestsByAgentQuery(agentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	statuses := make(map[string]int)
	for _, r := range result {
		statuses[r.Status]++
	}
	suite.Equal(map[string]int{"pending": 1, "accepted": 1, "cancelled": 1}, statuses)
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TestHandle_MapsAllFields() {
	agentID := kernel.NewUUID()
	request := suite.saveRequest(agentID)

	query, err := queries.NewGetPickupRequestsByAgentQuery(agentID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(request.ID(), result[0].ID)
	suite.Equal(request.ListingID(), result[0].ListingID)
	suite.Equal(request.SellerID(), result[0].SellerID)
	suite.Equal(agentID, result[0].DeliveryAgentID)
	suite.False(result[0].CreatedAt.IsZero())
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPickupRequestsByAgentQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetPickupRequestsByAgentQuery constructor")
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) saveRequest(
	agentID kernel.UUID,
) *pickup.PickupRequest {
	request, err := pickup.NewPickupRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), agentID)
	suite.Require().NoError(err)

	repo := pickuprepo.NewGormPickupRequestRepository(suite.db, &mockAggregateTracker{})
	err = repo.Add(context.Background(), request)
	suite.Require().NoError(err)

	return request
}

func (suite *GetPickupRequestsByAgentQueryHandlerTestSuite) updateRequest(r *pickup.PickupRequest) {
	repo := pickuprepo.NewGormPickupRequestRepository(suite.db, &mockAggregateTracker{})
	err := repo.Update(context.Background(), r)
	suite.Require().NoError(err)
}

func TestGetPickupRequestsByAgentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPickupRequestsByAgentQueryHandlerTestSuite))
}
