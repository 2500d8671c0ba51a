package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves a courier's undelivered orders: the
// working set shown on the courier's home screen.
type GetActiveDeliveriesQuery struct {
	deliveryPersonID kernel.UUID
	guard            guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a validated active-deliveries query.
func NewGetActiveDeliveriesQuery(deliveryPersonID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return GetActiveDeliveriesQuery{
		deliveryPersonID: deliveryPersonID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// DeliveryPersonID returns the courier whose deliveries are requested.
func (q GetActiveDeliveriesQuery) DeliveryPersonID() kernel.UUID {
	return q.deliveryPersonID
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse is one in-flight delivery, combining the
// order's live status with the settlement terms fixed at acceptance.
type GetActiveDeliveriesQueryResponse struct {
	OrderID          kernel.UUID
	GeneratedOrderID string
	Status           string
	DeliveryAmount   int64
	PaymentMethod    string
	AcceptedAt       time.Time
}
