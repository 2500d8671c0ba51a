// Package notifications turns domain events into channel messages and
// persisted feed entries.
//
// Everything in this package is best-effort by design: the order's status
// change is the durable source of truth, and no failure on the notification
// path may fail or roll back the state transition that triggered it.
// Customers who miss a push can always poll order status.
package notifications

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pubsub"
)

// Publisher is the slice of the channel registry the broadcaster needs.
type Publisher interface {
	Publish(topic string, payload any)
}

// EventProducer forwards committed status changes to an external event
// stream. Optional; a nil producer disables the path.
type EventProducer interface {
	PublishOrderChanged(ctx context.Context, e order.StatusChanged) error
}

// StatusMessage is the payload published on order-status topics and streamed
// to subscribed customers.
type StatusMessage struct {
	OrderID          string `json:"orderId"`
	GeneratedOrderID string `json:"generatedOrderId"`
	Message          string `json:"message"`
	TotalAmount      int64  `json:"totalAmount"`
	Status           string `json:"status"`
}

// CourierAlert is the payload published on delivery-notify topics when a new
// order becomes available to a courier.
type CourierAlert struct {
	OrderID          string `json:"orderId"`
	GeneratedOrderID string `json:"generatedOrderId"`
	Amount           int64  `json:"amount"`
	Message          string `json:"message"`
}

// Broadcaster consumes StatusChanged events and fans them out: a persisted
// notification for the feed, a registry publish for live subscribers and an
// optional external event. It never returns an error to the caller.
type Broadcaster struct {
	registry      Publisher
	notifications ports.NotificationRepository
	producer      EventProducer
	logger        *slog.Logger
}

// NewBroadcaster creates a broadcaster. notifications and producer may be
// nil, disabling the persisted feed or the external event path respectively.
func NewBroadcaster(
	registry Publisher,
	notifications ports.NotificationRepository,
	producer EventProducer,
	logger *slog.Logger,
) *Broadcaster {
	return &Broadcaster{
		registry:      registry,
		notifications: notifications,
		producer:      producer,
		logger:        logger.With("component", "broadcaster"),
	}
}

// OrderStatusChanged announces an already-persisted status transition to the
// customer. Each failure on the way is logged and swallowed; the durable
// state change this event describes has already happened.
func (b *Broadcaster) OrderStatusChanged(ctx context.Context, e order.StatusChanged) {
	topic := pubsub.OrderStatusTopic(e.UserID)

	if b.notifications != nil {
		n, err := notification.NewNotification(
			kernel.NewUUID(), topic, e.OrderID, e.NewStatus, e.Message, e.TotalAmount,
		)
		if err != nil {
			b.logger.ErrorContext(ctx, "Failed to build notification", "order_id", e.OrderID.String(), "error", err)
		} else if err = b.notifications.Upsert(ctx, n); err != nil {
			b.logger.ErrorContext(ctx, "Failed to persist notification", "order_id", e.OrderID.String(), "error", err)
		}
	}

	b.registry.Publish(topic, StatusMessage{
		OrderID:          e.OrderID.String(),
		GeneratedOrderID: e.GeneratedOrderID,
		Message:          e.Message,
		TotalAmount:      e.TotalAmount,
		Status:           e.NewStatus.String(),
	})

	if b.producer != nil {
		if err := b.producer.PublishOrderChanged(ctx, e); err != nil {
			b.logger.ErrorContext(ctx, "Failed to emit order changed event", "order_id", e.OrderID.String(), "error", err)
		}
	}
}

// NotifyCourier publishes a new-order alert on the courier's channel. The
// producing side (shop acceptance) is outside this core; consumption works
// exactly like customer notifications.
func (b *Broadcaster) NotifyCourier(
	_ context.Context,
	deliveryPersonID, orderID kernel.UUID,
	generatedOrderID string,
	amount int64,
) {
	b.registry.Publish(pubsub.CourierAlertTopic(deliveryPersonID), CourierAlert{
		OrderID:          orderID.String(),
		GeneratedOrderID: generatedOrderID,
		Amount:           amount,
		Message:          "A new order is available for delivery.",
	})
}
