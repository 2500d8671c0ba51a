package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// LocationReporter relays validated position samples to the live stream.
type LocationReporter interface {
	Report(orderID, deliveryPersonID kernel.UUID, latitude, longitude float64) error
}

// ReportLocationCommandHandler forwards courier position samples to the
// order's live location stream. No transaction is involved: samples are
// ephemeral, and losing one is harmless since the next report replaces it
// within seconds.
type ReportLocationCommandHandler struct {
	reporter LocationReporter
}

// NewReportLocationCommandHandler creates a handler for position reports.
func NewReportLocationCommandHandler(reporter LocationReporter) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		reporter: reporter,
	}
}

// Handle relays one position sample.
func (h ReportLocationCommandHandler) Handle(_ context.Context, command ReportLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.reporter.Report(
		command.OrderID(), command.DeliveryPersonID(), command.Latitude(), command.Longitude())
}
