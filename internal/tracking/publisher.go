// Package tracking relays courier position reports.
//
// Two deliberately separate data paths live here. The live stream republishes
// every sample on the order's location topic immediately, with no buffering,
// retry or ordering guarantee beyond "last publish wins", since a viewer
// joining late only cares about the most recent position. The last-known side channel
// records the courier's latest position in memory so the periodic flush job
// can persist it on the DeliveryPerson record; it is slow-moving and survives
// the order.
package tracking

import (
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pubsub"
)

// Publisher is the slice of the channel registry the stream publisher needs.
type Publisher interface {
	Publish(topic string, payload any)
}

// LocationUpdate is the payload published on order-location topics.
type LocationUpdate struct {
	OrderID   string    `json:"orderId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamPublisher is a thin, non-blocking relay from a courier device to the
// order's location topic. It carries no business invariant; the only failures
// it can surface are malformed coordinates.
type StreamPublisher struct {
	registry Publisher
	buffer   *PositionBuffer
	logger   *slog.Logger
}

// NewStreamPublisher creates a stream publisher. buffer may be nil to
// disable the last-known side channel.
func NewStreamPublisher(registry Publisher, buffer *PositionBuffer, logger *slog.Logger) *StreamPublisher {
	return &StreamPublisher{
		registry: registry,
		buffer:   buffer,
		logger:   logger.With("component", "location_stream"),
	}
}

// Report validates and republishes one position sample. Publishing to an
// order nobody is watching is the normal steady state, not an error.
func (p *StreamPublisher) Report(orderID, deliveryPersonID kernel.UUID, latitude, longitude float64) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}

	p.registry.Publish(pubsub.OrderLocationTopic(orderID), LocationUpdate{
		OrderID:   orderID.String(),
		Latitude:  point.Latitude(),
		Longitude: point.Longitude(),
		Timestamp: time.Now().UTC(),
	})

	if p.buffer != nil {
		if err := deliveryPersonID.Validate(); err == nil {
			p.buffer.Record(deliveryPersonID, point)
		}
	}

	return nil
}

// PositionBuffer holds the most recent reported position per courier until
// the flush job drains it. Older samples are overwritten; only the latest
// position is meaningful for the persisted record.
type PositionBuffer struct {
	mu        sync.Mutex
	positions map[kernel.UUID]kernel.GeoPoint
}

// NewPositionBuffer creates an empty buffer.
func NewPositionBuffer() *PositionBuffer {
	return &PositionBuffer{
		positions: make(map[kernel.UUID]kernel.GeoPoint),
	}
}

// Record stores the courier's most recent position, replacing any earlier one.
func (b *PositionBuffer) Record(deliveryPersonID kernel.UUID, point kernel.GeoPoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.positions[deliveryPersonID] = point
}

// Drain removes and returns everything recorded since the last drain.
func (b *PositionBuffer) Drain() map[kernel.UUID]kernel.GeoPoint {
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := b.positions
	b.positions = make(map[kernel.UUID]kernel.GeoPoint)
	return drained
}

// Len returns the number of couriers with a buffered position.
func (b *PositionBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.positions)
}
