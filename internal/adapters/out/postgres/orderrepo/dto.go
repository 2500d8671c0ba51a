// Package orderrepo persists order aggregates. It handles the conversion
// between the domain model and the relational representation, including the
// conditional status write that serializes concurrent transitions.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire name so read-side queries and the conditional
// write compare against the same strings the API speaks.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GeneratedOrderID string     `gorm:"uniqueIndex"`
	UserID           uuid.UUID  `gorm:"type:uuid;index"`
	AddressID        uuid.UUID  `gorm:"type:uuid"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`
	TotalAmount      int64
	PaymentStatus    string
	Status           string `gorm:"index"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var deliveryPersonID *uuid.UUID
	if id := aggregate.DeliveryPerson(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		GeneratedOrderID: aggregate.GeneratedOrderID(),
		UserID:           aggregate.UserID().Bytes(),
		AddressID:        aggregate.AddressID().Bytes(),
		DeliveryPersonID: deliveryPersonID,
		TotalAmount:      aggregate.TotalAmount(),
		PaymentStatus:    aggregate.PaymentStatus(),
		Status:           aggregate.Status().String(),
		CreatedAt:        aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-checks the status/courier consistency invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dpID, dpErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dpErr != nil {
			return nil, dpErr
		}

		deliveryPersonID = &dpID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.GeneratedOrderID,
		userID,
		addressID,
		dto.TotalAmount,
		dto.PaymentStatus,
		status,
		deliveryPersonID,
		dto.CreatedAt,
	)
}
