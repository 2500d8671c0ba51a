// Package order provides the Order aggregate and the fulfillment state
// machine at the heart of the delivery core.
//
// The package includes:
//   - Order: the aggregate root owning the order's fulfillment lifecycle
//   - Status: a strictly linear state machine over the five order states
//   - StatusChanged: the domain event emitted on every applied transition
//
// Key business rules:
//   - status follows accepted -> preparing -> on_the_way -> reached -> delivered,
//     never out of order, never skipping a step
//   - the acceptance transition (Assign) is the only one that binds a courier
//   - a courier is bound if and only if the status is at or past preparing
//   - any transition request other than the single legal successor is
//     rejected with ErrInvalidTransition and leaves the order unchanged
package order
