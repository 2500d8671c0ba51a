package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries one position sample from a courier device:
// where the courier currently is while delivering the given order.
type ReportLocationCommand struct {
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	latitude         float64
	longitude        float64
	guard            guard.ConstructorGuard
}

// NewReportLocationCommand creates a validated position report. Coordinates
// are range-checked here so malformed samples are rejected before they reach
// the stream.
func NewReportLocationCommand(
	orderID, deliveryPersonID kernel.UUID, latitude, longitude float64,
) (ReportLocationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReportLocationCommand{}, err
	}
	if err := deliveryPersonID.Validate(); err != nil {
		return ReportLocationCommand{}, err
	}
	if _, err := kernel.NewGeoPoint(latitude, longitude); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		latitude:         latitude,
		longitude:        longitude,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order the courier is delivering.
func (c *ReportLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryPersonID returns the reporting courier.
func (c *ReportLocationCommand) DeliveryPersonID() kernel.UUID {
	return c.deliveryPersonID
}

// Latitude returns the reported latitude in decimal degrees.
func (c *ReportLocationCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the reported longitude in decimal degrees.
func (c *ReportLocationCommand) Longitude() float64 {
	return c.longitude
}

// Validate ensures the command was created through the constructor.
func (c *ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}
