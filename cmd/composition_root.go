package cmd

import (
	"log/slog"
	"strings"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/jobs"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pubsub"
	"fulfillment/internal/tracking"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	registry    *pubsub.Registry
	broadcaster *notifications.Broadcaster
	producer    *kafka.OrderChangedProducer
	buffer      *tracking.PositionBuffer
	stream      *tracking.StreamPublisher
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := pubsub.NewRegistry()
	buffer := tracking.NewPositionBuffer()

	var producer *kafka.OrderChangedProducer
	if config.KafkaHost != "" {
		producer = kafka.NewOrderChangedProducer(
			strings.Split(config.KafkaHost, ","), config.KafkaOrderChangedTopic,
		)
	}

	feed := notificationrepo.NewGormNotificationRepository(gormDB, noopTracker{})

	var eventProducer notifications.EventProducer
	if producer != nil {
		eventProducer = producer
	}
	broadcaster := notifications.NewBroadcaster(registry, feed, eventProducer, logger)

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:    registry,
		broadcaster: broadcaster,
		producer:    producer,
		buffer:      buffer,
		stream:      tracking.NewStreamPublisher(registry, buffer, logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.AcceptanceUoWFactory = FuncAcceptanceUoWFactory(func() commands.AcceptanceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.stream)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkNotificationsReadCommandHandler() commands.MarkNotificationsReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationsReadCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderNotificationsQueryHandler() queries.GetOrderNotificationsQueryHandler {
	return queries.NewGetOrderNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateStreamHub() *httpin.StreamHub {
	return httpin.NewStreamHub(c.registry)
}

func (c *CompositionRoot) CreateLocationFlushJob(schedule string) *jobs.LocationFlushJob {
	handler := c.CreateUpdateCourierLocationCommandHandler()
	return jobs.NewLocationFlushJob(c.buffer, handler, schedule, c.logger)
}

// Close releases outbound connections held by the root.
func (c *CompositionRoot) Close() error {
	if c.producer != nil {
		return c.producer.Close()
	}
	return nil
}

// noopTracker satisfies the repository tracker dependency for repositories
// used outside a unit of work, where nothing consumes the tracked set.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncAcceptanceUoWFactory func() commands.AcceptanceUoW

func (f FuncAcceptanceUoWFactory) Create() commands.AcceptanceUoW {
	return f()
}
