package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves an order one step forward along its lifecycle:
// picked up at the shop, reached the customer, or delivered. The target
// status names the step being reported, not a free choice; anything other
// than the current status's single successor is rejected.
type AdvanceOrderCommand struct {
	orderID kernel.UUID
	target  order.Status
	guard   guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a validated progress command. target must be
// one of the valid statuses; acceptance has its own command and Preparing is
// rejected by the handler.
func NewAdvanceOrderCommand(orderID kernel.UUID, target order.Status) (AdvanceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being advanced.
func (c *AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the order is being advanced to.
func (c *AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}
