package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for
// DeliveryPersonOrder settlement records.
type AssignmentRepository interface {
	// Add persists a new settlement record. The storage layer carries a
	// unique constraint on the order identifier; inserting a second record
	// for the same order returns assignment.ErrDuplicateForOrder (wrapped).
	Add(ctx context.Context, rec *assignment.DeliveryPersonOrder) error

	// GetByOrderID retrieves the settlement record for an order.
	// Returns errs.ErrObjectNotFound (wrapped) when none exists.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*assignment.DeliveryPersonOrder, error)
}
