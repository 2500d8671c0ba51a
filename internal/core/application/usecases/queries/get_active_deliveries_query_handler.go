package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves a courier's in-flight deliveries
// from the database. Joins the order row with the settlement record created
// at acceptance so the courier sees amount and payment method next to the
// live status.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active-delivery
// queries. Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle returns the courier's undelivered orders, most recently accepted
// first. A courier with nothing in flight yields an empty slice.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.generated_order_id,
			o.status,
			a.delivery_amount,
			a.payment_method,
			a.created_at
		FROM orders o
		JOIN delivery_person_orders a ON a.order_id = o.id
		WHERE o.delivery_person_id = ?
		  AND o.status != ?
		ORDER BY a.created_at DESC
	`, query.DeliveryPersonID().Bytes(), order.Delivered.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetActiveDeliveriesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&delivery.GeneratedOrderID,
			&delivery.Status,
			&delivery.DeliveryAmount,
			&delivery.PaymentMethod,
			&delivery.AcceptedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery.OrderID = orderID
		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
