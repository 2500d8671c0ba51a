package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
// Requires the connection to be opened with TranslateError so unique
// violations surface as gorm.ErrDuplicatedKey.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new settlement record. A unique violation on order_id means
// another courier's record got there first and is reported as
// assignment.ErrDuplicateForOrder.
func (r *GormAssignmentRepository) Add(ctx context.Context, rec *assignment.DeliveryPersonOrder) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rec)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: order %s", assignment.ErrDuplicateForOrder, rec.OrderID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(rec.ID(), rec)
	return nil
}

// GetByOrderID retrieves the settlement record for an order.
func (r *GormAssignmentRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.DeliveryPersonOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
