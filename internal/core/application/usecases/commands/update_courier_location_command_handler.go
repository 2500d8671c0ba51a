package commands

import (
	"context"
)

// UpdateCourierLocationCommandHandler writes a courier's last-known position
// to storage. This is the slow-moving side of location handling; it runs on
// the flush job cadence, not per stream sample.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for persisted
// courier location updates.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, moves them to the reported position and persists
// the change. Returns errs.ErrObjectNotFound (wrapped) for unknown couriers.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, command UpdateCourierLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	dp, err := courierRepo.Get(ctx, command.DeliveryPersonID())
	if err != nil {
		return err
	}

	if err = dp.MoveTo(command.Point(), command.Address()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, dp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
