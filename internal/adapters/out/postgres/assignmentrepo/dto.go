// Package assignmentrepo persists DeliveryPersonOrder settlement records.
// The unique index on order_id is the hard guarantee that at most one courier
// is ever bound to an order, whatever races happen above it.
package assignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryPersonOrderDTO represents the database structure for persisting
// settlement records.
type DeliveryPersonOrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid;index"`
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	GeneratedOrderID string
	DeliveryAmount   int64
	PaymentStatus    string
	PaymentMethod    string
	CreatedAt        time.Time
}

// TableName specifies the database table name for settlement records.
func (DeliveryPersonOrderDTO) TableName() string {
	return "delivery_person_orders"
}

// fromDomain converts a settlement record to its database representation.
func fromDomain(rec *assignment.DeliveryPersonOrder) DeliveryPersonOrderDTO {
	return DeliveryPersonOrderDTO{
		ID:               rec.ID().Bytes(),
		DeliveryPersonID: rec.DeliveryPersonID().Bytes(),
		OrderID:          rec.OrderID().Bytes(),
		GeneratedOrderID: rec.GeneratedOrderID(),
		DeliveryAmount:   rec.DeliveryAmount(),
		PaymentStatus:    rec.PaymentStatus(),
		PaymentMethod:    rec.PaymentMethod(),
		CreatedAt:        rec.CreatedAt(),
	}
}

// toDomain converts a database DTO to a settlement record.
func toDomain(dto DeliveryPersonOrderDTO) (*assignment.DeliveryPersonOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryPersonID, err := kernel.UUIDFromBytes(dto.DeliveryPersonID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreDeliveryPersonOrder(
		id,
		deliveryPersonID,
		orderID,
		dto.GeneratedOrderID,
		dto.DeliveryAmount,
		dto.PaymentStatus,
		dto.PaymentMethod,
		dto.CreatedAt,
	)
}
