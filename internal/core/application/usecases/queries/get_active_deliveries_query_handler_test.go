package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveDeliveriesQueryHandlerTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	orderRepo      *orderrepo.GormOrderRepository
	assignmentRepo *assignmentrepo.GormAssignmentRepository
	handler        queries.GetActiveDeliveriesQueryHandler
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.DeliveryPersonOrderDTO{},
	))

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.assignmentRepo = assignmentrepo.NewGormAssignmentRepository(db, noopTracker{})
	suite.handler = queries.NewGetActiveDeliveriesQueryHandler(db)
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, delivery_person_orders").Error)
}

// addDelivery creates an order accepted by the courier, optionally advanced
// to a later status, together with its settlement record.
func (suite *GetActiveDeliveriesQueryHandlerTestSuite) addDelivery(
	deliveryPersonID kernel.UUID, status order.Status,
) *order.Order {
	ctx := context.Background()

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8],
		kernel.NewUUID(), kernel.NewUUID(), 1299, order.PaymentPending)
	suite.Require().NoError(err)

	_, err = testOrder.Assign(deliveryPersonID)
	suite.Require().NoError(err)
	for testOrder.Status() != status {
		next, nextErr := testOrder.Status().Next()
		suite.Require().NoError(nextErr)
		_, err = testOrder.Advance(next)
		suite.Require().NoError(err)
	}

	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	rec, err := assignment.NewDeliveryPersonOrder(
		kernel.NewUUID(), deliveryPersonID, testOrder.ID(), testOrder.GeneratedOrderID(),
		testOrder.TotalAmount(), testOrder.PaymentStatus(), assignment.PaymentMethodCOD)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignmentRepo.Add(ctx, rec))

	return testOrder
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TestHandle_NoDeliveries_ReturnsEmptySlice() {
	query, err := queries.NewGetActiveDeliveriesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TestHandle_InFlightDeliveries_Returned() {
	dpID := kernel.NewUUID()
	preparing := suite.addDelivery(dpID, order.Preparing)
	onTheWay := suite.addDelivery(dpID, order.OnTheWay)

	query, err := queries.NewGetActiveDeliveriesQuery(dpID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	byOrder := map[kernel.UUID]queries.GetActiveDeliveriesQueryResponse{}
	for _, delivery := range result {
		byOrder[delivery.OrderID] = delivery
	}
	suite.Equal(order.Preparing.String(), byOrder[preparing.ID()].Status)
	suite.Equal(order.OnTheWay.String(), byOrder[onTheWay.ID()].Status)
	suite.Equal(int64(1299), byOrder[preparing.ID()].DeliveryAmount)
	suite.Equal(assignment.PaymentMethodCOD, byOrder[preparing.ID()].PaymentMethod)
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TestHandle_DeliveredOrdersExcluded() {
	dpID := kernel.NewUUID()
	suite.addDelivery(dpID, order.Delivered)
	active := suite.addDelivery(dpID, order.Reached)

	query, err := queries.NewGetActiveDeliveriesQuery(dpID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].OrderID)
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TestHandle_OtherCouriersExcluded() {
	dpID := kernel.NewUUID()
	suite.addDelivery(dpID, order.Preparing)
	suite.addDelivery(kernel.NewUUID(), order.Preparing)

	query, err := queries.NewGetActiveDeliveriesQuery(dpID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *GetActiveDeliveriesQueryHandlerTestSuite) TestHandle_NotConstructedQuery_Fails() {
	_, err := suite.handler.Handle(context.Background(), queries.GetActiveDeliveriesQuery{})

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func TestGetActiveDeliveriesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveDeliveriesQueryHandlerTestSuite))
}
