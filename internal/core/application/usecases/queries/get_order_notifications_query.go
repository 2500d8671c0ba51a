package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderNotificationsQueryIsNotConstructed = errors.New(
	"GetOrderNotificationsQuery must be created via NewGetOrderNotificationsQuery constructor",
)

// GetOrderNotificationsQuery retrieves the persisted notification feed of one
// order, oldest first. The feed is what a customer sees when they open the
// order screen after missing the live pushes.
type GetOrderNotificationsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderNotificationsQuery creates a validated feed query.
func NewGetOrderNotificationsQuery(orderID kernel.UUID) (GetOrderNotificationsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderNotificationsQuery{}, err
	}

	return GetOrderNotificationsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose feed is requested.
func (q GetOrderNotificationsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderNotificationsQueryIsNotConstructed)
}

// GetOrderNotificationsQueryResponse is one feed entry.
type GetOrderNotificationsQueryResponse struct {
	ID        kernel.UUID
	Status    string
	Message   string
	Amount    int64
	IsRead    bool
	CreatedAt time.Time
}
