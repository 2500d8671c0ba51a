package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
)

// ErrStaleOrderStatus means the stored status changed between reading the
// order and writing the transition. The caller should re-fetch and decide
// whether the step it wanted to report already happened.
var ErrStaleOrderStatus = errors.New("order status changed concurrently")

// AdvanceOrderCommandHandler applies a single forward step in the order
// lifecycle. The state machine decides legality; the conditional status
// write keeps the step atomic under concurrent submissions of the same
// transition, so delivery apps that double-tap a button produce exactly
// one applied transition and one customer notification.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
}

// NewAdvanceOrderCommandHandler creates a handler for order progress updates.
// notifier receives the status change after the transaction commits
// and may be nil in contexts without a notification pipeline.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle executes the transition. Returns order.ErrInvalidTransition
// (wrapped) when the target is not the current status's successor, including
// repeats of an already-applied step, and ErrStaleOrderStatus when the
// conditional write found the row changed underneath.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) error {
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

	ordersRepo := uow.OrderRepository()

	ord, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	previous := ord.Status()
	event, err := ord.Advance(command.Target())
	if err != nil {
		return err
	}

	ok, err := ordersRepo.UpdateStatusIf(ctx, ord.ID(), previous, ord.Status(), nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStaleOrderStatus
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil && event.NewStatus != order.Unknown {
		h.notifier.OrderStatusChanged(ctx, event)
	}

	return nil
}
