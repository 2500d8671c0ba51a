package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a courier's attempt to take ownership of an order.
// Acceptance is the only transition that binds a courier; at most one
// attempt per order can ever succeed.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, courierUserID)
//	record, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderAlreadyAssigned) {
//	    // show "order no longer available"
//	}
type AcceptOrderCommand struct {
	orderID       kernel.UUID
	courierUserID kernel.UUID
	guard         guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a validated acceptance command.
// courierUserID is the courier's account identifier, not the courier row ID.
func NewAcceptOrderCommand(orderID, courierUserID kernel.UUID) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}
	if err := courierUserID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:       orderID,
		courierUserID: courierUserID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being accepted.
func (c *AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierUserID returns the accepting courier's account identifier.
func (c *AcceptOrderCommand) CourierUserID() kernel.UUID {
	return c.courierUserID
}

// Validate ensures the command was created through the constructor.
func (c *AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
