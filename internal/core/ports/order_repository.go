// Package ports defines the contracts between the fulfillment core and its
// infrastructure adapters: repositories, the unit of work and transaction
// boundaries. The interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Status writes go exclusively through UpdateStatusIf: a conditional write
// that only succeeds when the stored status still matches the expected prior
// value. This is the serialization point for concurrent transitions on the
// same order; no component writes to the status column any other way.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatusIf performs the compare-and-swap status write: the row is
	// updated only if its stored status equals expected. When deliveryPersonID
	// is non-nil it is written together with the status, which is how the
	// acceptance transition binds the courier atomically.
	//
	// Returns false without error when the conditional write lost the race,
	// leaving the stored row untouched.
	UpdateStatusIf(
		ctx context.Context,
		id kernel.UUID,
		expected, next order.Status,
		deliveryPersonID *kernel.UUID,
	) (bool, error)
}
