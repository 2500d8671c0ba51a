package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the
// notification feed.
type NotificationRepository interface {
	// Upsert stores a notification, idempotent by (recipient topic, order,
	// status): re-emitting the same transition must not create a second
	// unread entry.
	Upsert(ctx context.Context, n *notification.Notification) error

	// MarkAllRead flips every notification for the order to read and returns
	// the number of rows updated. Notifications of other orders are untouched.
	MarkAllRead(ctx context.Context, orderID kernel.UUID) (int64, error)
}
