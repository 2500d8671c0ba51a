package commands

import (
	"context"
)

// MarkNotificationsReadCommandHandler marks all notifications of one order
// as read. Marking an order with no notifications is a no-op, not an error;
// the customer may open the feed before anything was announced.
type MarkNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationsReadCommandHandler creates a handler for mark-read
// operations.
func NewMarkNotificationsReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the order's notifications read and returns how many were
// updated.
func (h MarkNotificationsReadCommandHandler) Handle(
	ctx context.Context, command MarkNotificationsReadCommand,
) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	updated, err := uow.NotificationRepository().MarkAllRead(ctx, command.OrderID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}
