package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Payment states carried on the order. The fulfillment core never mutates
// them; they decide how the assignment settlement record is filled in.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a delivery order's fulfillment lifecycle.
// It is created by the checkout flow in Accepted status and from then on is
// mutated exclusively through the state machine methods below; nothing else
// in the system writes to its status.
//
// Invariants:
//   - the status follows the linear chain defined by Status
//   - a delivery person is bound if and only if the status is at or past Preparing
//   - total amount is never negative
//   - instances are created only through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// generatedOrderID is the human-facing order code shown to customers
	generatedOrderID string

	// userID identifies the customer who placed the order
	userID kernel.UUID

	// addressID references the delivery address record
	addressID kernel.UUID

	// deliveryPersonID is the bound courier (nil until acceptance)
	deliveryPersonID *kernel.UUID

	// totalAmount is the order total in minor currency units
	totalAmount int64

	// paymentStatus is PaymentPending or PaymentPaid
	paymentStatus string

	// status is the current state in the fulfillment lifecycle
	status Status

	// createdAt is when the checkout flow created the order
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order in Accepted status. This is the entry point used
// by the checkout flow; the fulfillment core itself only ever restores and
// advances existing orders.
func NewOrder(
	id kernel.UUID,
	generatedOrderID string,
	userID kernel.UUID,
	addressID kernel.UUID,
	totalAmount int64,
	paymentStatus string,
) (*Order, error) {
	o := &Order{
		status:        Accepted,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setGeneratedOrderID(generatedOrderID),
		o.setUserID(userID),
		o.setAddressID(addressID),
		o.setTotalAmount(totalAmount),
		o.setPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and an optional delivery person, and checks the
// status/courier consistency invariant.
func RestoreOrder(
	id kernel.UUID,
	generatedOrderID string,
	userID kernel.UUID,
	addressID kernel.UUID,
	totalAmount int64,
	paymentStatus string,
	status Status,
	deliveryPersonID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setGeneratedOrderID(generatedOrderID),
		o.setUserID(userID),
		o.setAddressID(addressID),
		o.setTotalAmount(totalAmount),
		o.setPaymentStatus(paymentStatus),
		status.Validate(),
		status.ValidateCanHaveDeliveryPerson(deliveryPersonID != nil),
	); err != nil {
		return nil, err
	}

	o.status = status
	if deliveryPersonID != nil {
		dpID := *deliveryPersonID
		if err := dpID.Validate(); err != nil {
			return nil, err
		}
		o.deliveryPersonID = &dpID
	}

	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// GeneratedOrderID returns the human-facing order code.
func (o *Order) GeneratedOrderID() string {
	return o.generatedOrderID
}

// UserID returns the identifier of the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// AddressID returns the delivery address reference.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// TotalAmount returns the order total in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// PaymentStatus returns the payment state carried on the order.
func (o *Order) PaymentStatus() string {
	return o.paymentStatus
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryPerson returns the bound courier's ID, or nil before acceptance.
func (o *Order) DeliveryPerson() *kernel.UUID {
	return o.deliveryPersonID
}

// CreatedAt returns when the checkout flow created the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Assign performs the acceptance transition: Accepted -> Preparing, binding
// the delivery person to the order. Any other starting status is rejected
// with ErrInvalidTransition, which is how a courier losing the acceptance
// race observes "order no longer available".
//
// Returns the StatusChanged event describing the applied transition. The
// caller is responsible for persisting the new status through the
// conditional-write discipline before announcing the event.
func (o *Order) Assign(deliveryPersonID kernel.UUID) (StatusChanged, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return StatusChanged{}, err
	}

	newStatus, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return StatusChanged{}, err
	}

	o.status = newStatus
	o.deliveryPersonID = &deliveryPersonID
	return o.statusChangedEvent(), nil
}

// Advance applies one of the courier-driven progress transitions:
// Preparing -> OnTheWay, OnTheWay -> Reached, Reached -> Delivered.
// The target must be the single legal successor of the current status;
// everything else, including re-submitting an already-applied transition,
// is rejected with ErrInvalidTransition and leaves the order untouched.
func (o *Order) Advance(target Status) (StatusChanged, error) {
	if target == Preparing {
		// Acceptance goes through Assign, which also binds the courier.
		return StatusChanged{}, newInvalidTransitionError(o.status, target)
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return StatusChanged{}, err
	}

	o.status = newStatus
	return o.statusChangedEvent(), nil
}

// statusChangedEvent builds the domain event for the order's current status.
func (o *Order) statusChangedEvent() StatusChanged {
	return StatusChanged{
		OrderID:          o.id,
		GeneratedOrderID: o.generatedOrderID,
		UserID:           o.userID,
		NewStatus:        o.status,
		Message:          o.status.CustomerMessage(),
		TotalAmount:      o.totalAmount,
		OccurredAt:       time.Now().UTC(),
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setGeneratedOrderID(generatedOrderID string) error {
	if generatedOrderID == "" {
		return errs.NewValueIsRequiredError("generatedOrderID")
	}
	o.generatedOrderID = generatedOrderID
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setTotalAmount(totalAmount int64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount is invalid", fmt.Errorf("%d is negative", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus string) error {
	if paymentStatus != PaymentPending && paymentStatus != PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus is invalid", fmt.Errorf("%q is not a known payment status", paymentStatus))
	}
	o.paymentStatus = paymentStatus
	return nil
}
