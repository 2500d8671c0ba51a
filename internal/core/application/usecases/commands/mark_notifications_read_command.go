package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
)

// MarkNotificationsReadCommand flips every notification of one order to read.
// Issued when the customer opens the order's notification feed.
type MarkNotificationsReadCommand struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewMarkNotificationsReadCommand creates a validated mark-read command.
func NewMarkNotificationsReadCommand(orderID kernel.UUID) (MarkNotificationsReadCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkNotificationsReadCommand{}, err
	}

	return MarkNotificationsReadCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose notifications are being marked read.
func (c *MarkNotificationsReadCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}
