package postgres_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior across the
// fulfillment repositories: commits make writes visible together, rollbacks
// discard them together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.DeliveryPersonDTO{},
		&assignmentrepo.DeliveryPersonOrderDTO{},
		&notificationrepo.NotificationDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, delivery_persons, delivery_person_orders, notifications").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createAcceptedOrder() *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8],
		kernel.NewUUID(), kernel.NewUUID(), 2199, order.PaymentPending)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AcceptanceWrites_VisibleTogether() {
	ctx := context.Background()

	testOrder := suite.createAcceptedOrder()
	dp, err := courier.NewDeliveryPerson(kernel.NewUUID(), kernel.NewUUID(), "John Doe")
	suite.Require().NoError(err)
	dp.Approve()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, dp))

	_, err = testOrder.Assign(dp.ID())
	suite.Require().NoError(err)

	dpID := dp.ID()
	ok, err := uow.OrderRepository().UpdateStatusIf(ctx, testOrder.ID(), order.Accepted, order.Preparing, &dpID)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	rec, err := assignment.NewDeliveryPersonOrder(
		kernel.NewUUID(), dp.ID(), testOrder.ID(), testOrder.GeneratedOrderID(),
		testOrder.TotalAmount(), testOrder.PaymentStatus(), assignment.PaymentMethodCOD)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, rec))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loadedOrder, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loadedOrder.Status())
	suite.True(loadedOrder.DeliveryPerson().IsEqual(dp.ID()))

	loadedRec, err := verify.AssignmentRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(rec.ID(), loadedRec.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AcceptanceWrites_DiscardedTogether() {
	ctx := context.Background()

	testOrder := suite.createAcceptedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	rec, err := assignment.NewDeliveryPersonOrder(
		kernel.NewUUID(), kernel.NewUUID(), testOrder.ID(), testOrder.GeneratedOrderID(),
		testOrder.TotalAmount(), testOrder.PaymentStatus(), assignment.PaymentMethodCOD)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, rec))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err = verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = verify.AssignmentRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()

	err := uow.Commit(ctx)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()

	err := uow.Rollback(ctx)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_CalledTwice_NoNestedTransaction() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUnits_IsolatedTransactions() {
	ctx := context.Background()

	first := suite.createAcceptedOrder()
	second := suite.createAcceptedOrder()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, first))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, second))

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().Get(ctx, first.ID())
	suite.Require().NoError(err)

	_, err = verify.OrderRepository().Get(ctx, second.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
