// Package assignment provides the DeliveryPersonOrder record: the settlement
// artifact created at the moment a courier successfully accepts an order.
//
// At most one record may ever exist per order; the storage layer enforces
// this with a unique constraint on the order identifier, which is the
// concrete backstop for the "one courier per order" guarantee. The record is
// terminal once created: later status transitions mutate the order only.
package assignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Payment methods recorded on the settlement. Cash on delivery is used for
// orders still pending payment, online for orders already paid at checkout.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

var (
	// ErrDeliveryPersonOrderIsNotConstructed is returned when a record was
	// not created through NewDeliveryPersonOrder or RestoreDeliveryPersonOrder.
	ErrDeliveryPersonOrderIsNotConstructed = errors.New(
		"DeliveryPersonOrder must be created via NewDeliveryPersonOrder or RestoreDeliveryPersonOrder")

	// ErrDuplicateForOrder is returned by the storage layer when inserting a
	// second settlement record for the same order. It means another courier
	// already owns the order.
	ErrDuplicateForOrder = errors.New("an assignment already exists for this order")
)

// DeliveryPersonOrder binds exactly one courier to an order and carries the
// amounts needed to settle the delivery with the courier afterwards.
type DeliveryPersonOrder struct {
	id               kernel.UUID
	deliveryPersonID kernel.UUID
	orderID          kernel.UUID
	generatedOrderID string
	deliveryAmount   int64
	paymentStatus    string
	paymentMethod    string
	createdAt        time.Time
	isConstructed    bool
}

// NewDeliveryPersonOrder creates the settlement record for a successful
// acceptance. Called exactly once per order, inside the same transaction as
// the conditional status write.
func NewDeliveryPersonOrder(
	id, deliveryPersonID, orderID kernel.UUID,
	generatedOrderID string,
	deliveryAmount int64,
	paymentStatus, paymentMethod string,
) (*DeliveryPersonOrder, error) {
	rec := &DeliveryPersonOrder{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		rec.setID(id),
		rec.setDeliveryPersonID(deliveryPersonID),
		rec.setOrderID(orderID),
		rec.setGeneratedOrderID(generatedOrderID),
		rec.setDeliveryAmount(deliveryAmount),
		rec.setPaymentStatus(paymentStatus),
		rec.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return rec, nil
}

// RestoreDeliveryPersonOrder reconstructs a settlement record from persistence.
func RestoreDeliveryPersonOrder(
	id, deliveryPersonID, orderID kernel.UUID,
	generatedOrderID string,
	deliveryAmount int64,
	paymentStatus, paymentMethod string,
	createdAt time.Time,
) (*DeliveryPersonOrder, error) {
	rec, err := NewDeliveryPersonOrder(
		id, deliveryPersonID, orderID, generatedOrderID, deliveryAmount, paymentStatus, paymentMethod,
	)
	if err != nil {
		return nil, err
	}

	rec.createdAt = createdAt
	return rec, nil
}

// Validate ensures the record was created through a constructor.
func (r *DeliveryPersonOrder) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryPersonOrderIsNotConstructed
	}

	return nil
}

// ID returns the record's unique identifier.
func (r *DeliveryPersonOrder) ID() kernel.UUID {
	return r.id
}

// DeliveryPersonID returns the courier bound to the order.
func (r *DeliveryPersonOrder) DeliveryPersonID() kernel.UUID {
	return r.deliveryPersonID
}

// OrderID returns the identifier of the accepted order.
func (r *DeliveryPersonOrder) OrderID() kernel.UUID {
	return r.orderID
}

// GeneratedOrderID returns the human-facing order code.
func (r *DeliveryPersonOrder) GeneratedOrderID() string {
	return r.generatedOrderID
}

// DeliveryAmount returns the amount the courier collects or settles,
// in minor currency units.
func (r *DeliveryPersonOrder) DeliveryAmount() int64 {
	return r.deliveryAmount
}

// PaymentStatus returns the payment state at the moment of acceptance.
func (r *DeliveryPersonOrder) PaymentStatus() string {
	return r.paymentStatus
}

// PaymentMethod returns PaymentMethodCOD or PaymentMethodOnline.
func (r *DeliveryPersonOrder) PaymentMethod() string {
	return r.paymentMethod
}

// CreatedAt returns when the acceptance happened.
func (r *DeliveryPersonOrder) CreatedAt() time.Time {
	return r.createdAt
}

func (r *DeliveryPersonOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryPersonOrder) setDeliveryPersonID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.deliveryPersonID = id
	return nil
}

func (r *DeliveryPersonOrder) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderID = id
	return nil
}

func (r *DeliveryPersonOrder) setGeneratedOrderID(generatedOrderID string) error {
	if generatedOrderID == "" {
		return errs.NewValueIsRequiredError("generatedOrderID")
	}
	r.generatedOrderID = generatedOrderID
	return nil
}

func (r *DeliveryPersonOrder) setDeliveryAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryAmount is invalid", fmt.Errorf("%d is negative", amount))
	}
	r.deliveryAmount = amount
	return nil
}

func (r *DeliveryPersonOrder) setPaymentStatus(paymentStatus string) error {
	if paymentStatus == "" {
		return errs.NewValueIsRequiredError("paymentStatus")
	}
	r.paymentStatus = paymentStatus
	return nil
}

func (r *DeliveryPersonOrder) setPaymentMethod(paymentMethod string) error {
	if paymentMethod != PaymentMethodCOD && paymentMethod != PaymentMethodOnline {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod is invalid", fmt.Errorf("%q is not a known payment method", paymentMethod))
	}
	r.paymentMethod = paymentMethod
	return nil
}
