package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChanged is the domain event emitted after a status transition has
// been applied to the aggregate. It is the sole hand-off artifact between the
// state machine and the notification broadcaster: the broadcaster turns it
// into a customer-facing channel message and never reaches back into the
// aggregate.
//
// The event describes an already-applied, to-be-persisted change; emitters
// must only announce it after the conditional write succeeded.
type StatusChanged struct {
	OrderID          kernel.UUID
	GeneratedOrderID string
	UserID           kernel.UUID
	NewStatus        Status
	Message          string
	TotalAmount      int64
	OccurredAt       time.Time
}
