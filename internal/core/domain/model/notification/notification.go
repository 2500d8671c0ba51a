// Package notification provides the persisted Notification entity backing
// the customer's notification feed.
//
// Notifications are idempotent by (recipient topic, order, status): emitting
// the same transition twice must not grow the unread feed. The ephemeral
// channel stream is best-effort; this entity is what a customer who missed
// the push sees on the next poll.
package notification

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Notification is one entry in a recipient's feed, created by the broadcaster
// when a status transition occurs and flipped to read by the recipient.
type Notification struct {
	id             kernel.UUID
	recipientTopic string
	orderID        kernel.UUID
	status         order.Status
	message        string
	amount         int64
	isRead         bool
	createdAt      time.Time
	isConstructed  bool
}

// NewNotification creates an unread notification for a status transition.
func NewNotification(
	id kernel.UUID,
	recipientTopic string,
	orderID kernel.UUID,
	status order.Status,
	message string,
	amount int64,
) (*Notification, error) {
	n := &Notification{
		message:       message,
		amount:        amount,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipientTopic(recipientTopic),
		n.setOrderID(orderID),
		n.setStatus(status),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipientTopic string,
	orderID kernel.UUID,
	status order.Status,
	message string,
	amount int64,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientTopic, orderID, status, message, amount)
	if err != nil {
		return nil, err
	}

	n.isRead = isRead
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}

	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientTopic returns the logical channel the notification belongs to.
func (n *Notification) RecipientTopic() string {
	return n.recipientTopic
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Status returns the order status at the moment of emission. Together with
// the recipient topic and order it forms the idempotency key.
func (n *Notification) Status() order.Status {
	return n.status
}

// Message returns the customer-facing text.
func (n *Notification) Message() string {
	return n.message
}

// Amount returns the order total carried for display, in minor units.
func (n *Notification) Amount() int64 {
	return n.amount
}

// IsRead reports whether the recipient marked the notification read.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns when the notification was emitted.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flips the notification to read. Idempotent.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipientTopic(topic string) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("recipientTopic")
	}
	n.recipientTopic = topic
	return nil
}

func (n *Notification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	n.orderID = orderID
	return nil
}

func (n *Notification) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}
