// Package courier provides the DeliveryPerson aggregate: the courier's
// approval and online state plus the persisted last-known position.
//
// Only approved couriers may accept orders. The last-known position is the
// slow, persisted side channel; the high-frequency order-scoped live stream
// deliberately bypasses this aggregate.
package courier
