package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pubsub"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type GetOrderNotificationsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *notificationrepo.GormNotificationRepository
	handler   queries.GetOrderNotificationsQueryHandler
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))

	suite.repo = notificationrepo.NewGormNotificationRepository(db, noopTracker{})
	suite.handler = queries.NewGetOrderNotificationsQueryHandler(db)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) addNotification(
	userID, orderID kernel.UUID, status order.Status,
) *notification.Notification {
	n, err := notification.NewNotification(
		kernel.NewUUID(), pubsub.OrderStatusTopic(userID), orderID, status, status.CustomerMessage(), 750)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Upsert(context.Background(), n))
	return n
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TestHandle_EmptyFeed_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderNotificationsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TestHandle_FeedEntries_ReturnedOldestFirst() {
	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	first := suite.addNotification(userID, orderID, order.Preparing)
	second := suite.addNotification(userID, orderID, order.OnTheWay)

	query, err := queries.NewGetOrderNotificationsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(order.Preparing.String(), result[0].Status)
	suite.Equal(order.Preparing.CustomerMessage(), result[0].Message)
	suite.Equal(int64(750), result[0].Amount)
	suite.False(result[0].IsRead)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(order.OnTheWay.String(), result[1].Status)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TestHandle_OtherOrdersExcluded() {
	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	suite.addNotification(userID, orderID, order.Preparing)
	suite.addNotification(userID, kernel.NewUUID(), order.Preparing)

	query, err := queries.NewGetOrderNotificationsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TestHandle_ReadStateReflected() {
	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	suite.addNotification(userID, orderID, order.Delivered)

	updated, err := suite.repo.MarkAllRead(context.Background(), orderID)
	suite.Require().NoError(err)
	suite.Require().Equal(int64(1), updated)

	query, err := queries.NewGetOrderNotificationsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].IsRead)
}

func (suite *GetOrderNotificationsQueryHandlerTestSuite) TestHandle_NotConstructedQuery_Fails() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderNotificationsQuery{})

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetOrderNotificationsQueryIsNotConstructed)
}

func TestGetOrderNotificationsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderNotificationsQueryHandlerTestSuite))
}
