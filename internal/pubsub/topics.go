package pubsub

import "fulfillment/internal/core/domain/model/kernel"

// Topic name constructors for the three channel families used by the
// fulfillment core. Keeping them here gives publishers and subscribers a
// single source of truth for topic naming.

// OrderStatusTopic is the customer-facing channel carrying status change
// messages for every order belonging to the user.
func OrderStatusTopic(userID kernel.UUID) string {
	return "order-status." + userID.String()
}

// CourierAlertTopic carries new-order alerts to a specific courier.
func CourierAlertTopic(deliveryPersonID kernel.UUID) string {
	return "delivery-notify." + deliveryPersonID.String()
}

// OrderLocationTopic carries the live position stream for a specific order.
func OrderLocationTopic(orderID kernel.UUID) string {
	return "order-location." + orderID.String()
}
