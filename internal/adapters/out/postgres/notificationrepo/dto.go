// Package notificationrepo persists the notification feed. The composite
// unique index on (recipient_topic, order_id, status) makes feed writes
// idempotent per transition: re-announcing the same status change never
// creates a second unread entry.
package notificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting feed
// entries.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientTopic string    `gorm:"uniqueIndex:idx_feed_entry"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_feed_entry;index"`
	Status         string    `gorm:"uniqueIndex:idx_feed_entry"`
	Message        string
	Amount         int64
	IsRead         bool
	CreatedAt      time.Time
}

// TableName specifies the database table name for feed entries.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification entity to its database representation.
func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID().Bytes(),
		RecipientTopic: n.RecipientTopic(),
		OrderID:        n.OrderID().Bytes(),
		Status:         n.Status().String(),
		Message:        n.Message(),
		Amount:         n.Amount(),
		IsRead:         n.IsRead(),
		CreatedAt:      n.CreatedAt(),
	}
}
