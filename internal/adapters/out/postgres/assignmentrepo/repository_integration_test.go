package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// AssignmentRepositoryIntegrationTestSuite verifies the settlement record
// persistence, especially the one-record-per-order unique constraint.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
	tracker    *MockAggregateTracker
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.DeliveryPersonOrderDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_person_orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db, suite.tracker)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) createRecord(orderID kernel.UUID) *assignment.DeliveryPersonOrder {
	rec, err := assignment.NewDeliveryPersonOrder(
		kernel.NewUUID(), kernel.NewUUID(), orderID,
		"ORD-"+orderID.String()[:8], 1499, "pending", assignment.PaymentMethodCOD)
	suite.Require().NoError(err)
	return rec
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_ValidRecord_RoundTrip() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	rec := suite.createRecord(orderID)
	suite.tracker.On("TrackAggregate", rec.ID(), rec).Once()

	suite.Require().NoError(suite.repository.Add(ctx, rec))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(rec.ID(), loaded.ID())
	suite.Equal(rec.DeliveryPersonID(), loaded.DeliveryPersonID())
	suite.Equal(rec.GeneratedOrderID(), loaded.GeneratedOrderID())
	suite.Equal(rec.DeliveryAmount(), loaded.DeliveryAmount())
	suite.Equal(assignment.PaymentMethodCOD, loaded.PaymentMethod())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_SecondRecordForOrder_ReturnsDuplicate() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	first := suite.createRecord(orderID)
	second := suite.createRecord(orderID)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, assignment.ErrDuplicateForOrder)

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), loaded.ID())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_DifferentOrders_BothPersist() {
	ctx := context.Background()

	first := suite.createRecord(kernel.NewUUID())
	second := suite.createRecord(kernel.NewUUID())

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.tracker.On("TrackAggregate", second.ID(), second).Once()

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	var count int64
	suite.Require().NoError(suite.db.Model(&assignmentrepo.DeliveryPersonOrderDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetByOrderID_Unknown_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByOrderID(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
