package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for DeliveryPerson
// aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, dp *courier.DeliveryPerson) error

	// Update persists changes to an existing courier aggregate, including the
	// last-known position written by the periodic flush job.
	Update(ctx context.Context, dp *courier.DeliveryPerson) error

	// Get retrieves a courier by their own identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error)

	// GetByUserID retrieves a courier by their linked account identifier.
	// Courier-facing actions authenticate as the account, not the courier row.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*courier.DeliveryPerson, error)
}
