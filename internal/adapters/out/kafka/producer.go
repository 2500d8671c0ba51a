// Package kafka publishes committed order status changes to an external
// event stream for downstream consumers (analytics, shop dashboards).
// The path is best-effort: the broadcaster logs and swallows publish
// failures, so a broker outage never affects order processing.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the wire payload emitted for every applied status
// transition.
type OrderChangedEvent struct {
	OrderID          string    `json:"orderId"`
	GeneratedOrderID string    `json:"generatedOrderId"`
	UserID           string    `json:"userId"`
	Status           string    `json:"status"`
	Message          string    `json:"message"`
	TotalAmount      int64     `json:"totalAmount"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// OrderChangedProducer writes status change events to one Kafka topic.
// Messages are keyed by order ID so transitions of the same order stay
// ordered within a partition.
type OrderChangedProducer struct {
	writer *kafka.Writer
}

// NewOrderChangedProducer creates a producer for the given brokers and topic.
func NewOrderChangedProducer(brokers []string, topic string) *OrderChangedProducer {
	return &OrderChangedProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// PublishOrderChanged emits one status change event.
func (p *OrderChangedProducer) PublishOrderChanged(ctx context.Context, e order.StatusChanged) error {
	data, err := json.Marshal(OrderChangedEvent{
		OrderID:          e.OrderID.String(),
		GeneratedOrderID: e.GeneratedOrderID,
		UserID:           e.UserID.String(),
		Status:           e.NewStatus.String(),
		Message:          e.Message,
		TotalAmount:      e.TotalAmount,
		OccurredAt:       e.OccurredAt,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *OrderChangedProducer) Close() error {
	return p.writer.Close()
}
