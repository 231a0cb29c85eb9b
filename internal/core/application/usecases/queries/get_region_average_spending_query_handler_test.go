package queries_test

import (
	"context"
	"testing"
	"time"

	"orderstats/internal/adapters/out/postgres/orderrepo"
	"orderstats/internal/core/application/usecases/queries"
	"orderstats/internal/core/domain/model/order"
	"orderstats/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopBatchTracker struct{}

func (noopBatchTracker) TrackBatch(uuid.UUID, int) {}

type GetRegionAverageSpendingQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetRegionAverageSpendingQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetRegionAverageSpendingQueryHandler(db, services.NewRegionAverageRanker())
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopBatchTracker{})
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, _ := queries.NewGetRegionAverageSpendingQuery(0)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_RanksStoredOrders() {
	suite.addOrders(
		suite.newOrder("West", 100, 1),
		suite.newOrder("West", 150, 2),
		suite.newOrder("East", 50, 1),
		suite.newOrder("North", 10, 1),
	)
	query, _ := queries.NewGetRegionAverageSpendingQuery(0)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("West", result[0].Region)
	suite.True(decimal.NewFromInt(200).Equal(result[0].AverageSpending.Decimal))
	suite.Equal(2, result[0].OrderCount)
	suite.Equal("East", result[1].Region)
	suite.Equal("North", result[2].Region)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_NullRegionIsNotGrouped() {
	suite.addOrders(
		suite.newOrder("", 1000, 1),
		suite.newOrder("South", 20, 1),
	)
	query, _ := queries.NewGetRegionAverageSpendingQuery(0)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("South", result[0].Region)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_AppliesLimit() {
	suite.addOrders(
		suite.newOrder("A", 3, 1),
		suite.newOrder("B", 2, 1),
		suite.newOrder("C", 1, 1),
	)
	query, _ := queries.NewGetRegionAverageSpendingQuery(2)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("A", result[0].Region)
	suite.Equal("B", result[1].Region)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetRegionAverageSpendingQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetRegionAverageSpendingQuery constructor")
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.addOrders(suite.newOrder("West", 1, 1))
	query, _ := queries.NewGetRegionAverageSpendingQuery(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) newOrder(region string, amount int64, qty int) *order.Order {
	o, err := order.NewOrder(order.Params{
		ProductID: 1000,
		Region:    region,
		OrderDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(amount),
		Quantity:  qty,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *GetRegionAverageSpendingQueryHandlerTestSuite) addOrders(orders ...*order.Order) {
	suite.Require().NoError(suite.orderRepo.AddBatch(context.Background(), uuid.New(), orders))
}

func TestGetRegionAverageSpendingQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetRegionAverageSpendingQueryHandlerTestSuite))
}
