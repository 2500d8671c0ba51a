package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand persists a courier's last-known position on
// the DeliveryPerson record. Issued by the periodic flush job and by the
// explicit location update endpoint; the live stream never goes through here.
type UpdateCourierLocationCommand struct {
	deliveryPersonID kernel.UUID
	point            kernel.GeoPoint
	address          string
	guard            guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a validated location update.
// address is an optional freeform description; empty keeps the stored one.
func NewUpdateCourierLocationCommand(
	deliveryPersonID kernel.UUID, latitude, longitude float64, address string,
) (UpdateCourierLocationCommand, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		deliveryPersonID: deliveryPersonID,
		point:            point,
		address:          address,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// DeliveryPersonID returns the courier whose position is being updated.
func (c *UpdateCourierLocationCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}

// Point returns the new position.
func (c *UpdateCourierLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// Address returns the freeform position description, possibly empty.
func (c *UpdateCourierLocationCommand) Address() string {
	return c.address
}

// Validate ensures the command was created through the constructor.
func (c *UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}
