package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for every rejected status
// transition. Callers that receive it for a transition they believe already
// happened should re-fetch the order instead of retrying.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Status represents the lifecycle state of a delivery order.
// It implements a strictly linear state machine:
//
//	Accepted ──> Preparing ──> OnTheWay ──> Reached ──> Delivered
//
// Each state has exactly one legal successor; any other requested transition
// is rejected. Values outside the five known states fail Validate, so illegal
// states are rejected at the boundary rather than discovered later.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Accepted is the initial status set by the checkout flow.
	// Orders in this status are visible to couriers and open for acceptance.
	Accepted

	// Preparing indicates a courier accepted the order and the shop is
	// preparing it. Entering this status binds the courier to the order.
	Preparing

	// OnTheWay indicates the courier picked the order up at the shop.
	OnTheWay

	// Reached indicates the courier arrived at the customer's location.
	Reached

	// Delivered indicates the order was handed off to the customer.
	// This is a final state with no further transitions.
	Delivered
)

// getStatusStrings returns the wire names of all statuses, Unknown included.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Accepted:  "accepted",
		Preparing: "preparing",
		OnTheWay:  "on_the_way",
		Reached:   "reached",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns only the five valid statuses.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Accepted:  "accepted",
		Preparing: "preparing",
		OnTheWay:  "on_the_way",
		Reached:   "reached",
		Delivered: "delivered",
	}
}

// ParseStatus converts a wire name into a Status. Any string outside the five
// known states is rejected, which closes the enumeration at the boundary.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a known order status", s))
}

// Validate checks that the Status is one of the five valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It implements fmt.Stringer and
// is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the single legal successor of the status.
// Delivered has no successor and returns ErrInvalidTransition.
func (s Status) Next() (Status, error) {
	switch s {
	case Accepted:
		return Preparing, nil
	case Preparing:
		return OnTheWay, nil
	case OnTheWay:
		return Reached, nil
	case Reached:
		return Delivered, nil
	default:
		return Unknown, newInvalidTransitionError(s, Unknown)
	}
}

// TransitionTo validates that target is the single legal successor of the
// current status and returns it. Every other request, including re-submitting
// an already-applied transition, is rejected.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	next, err := s.Next()
	if err != nil {
		return Unknown, newInvalidTransitionError(s, target)
	}
	if next != target {
		return Unknown, newInvalidTransitionError(s, target)
	}

	return target, nil
}

// ValidateCanHaveDeliveryPerson checks the consistency between the status and
// courier binding: a courier is bound if and only if the status is at or past
// Preparing.
func (s Status) ValidateCanHaveDeliveryPerson(assigned bool) error {
	if assigned && s == Accepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must not have a delivery person", s.String()),
		)
	}

	if !assigned && s != Accepted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must have a delivery person", s.String()),
		)
	}

	return nil
}

// CustomerMessage returns the fixed customer-facing text announced when an
// order enters this status. Statuses that are never announced return "".
func (s Status) CustomerMessage() string {
	switch s {
	case Preparing:
		return "Your order is now being prepared."
	case OnTheWay:
		return "Your order is on the way."
	case Reached:
		return "Your order reached your location."
	case Delivered:
		return "Your order has been delivered."
	default:
		return ""
	}
}

// newInvalidTransitionError builds the rejection error for a transition
// request, unwrapping to ErrInvalidTransition.
func newInvalidTransitionError(from, to Status) error {
	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, from.String(), to.String())
}
