package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderNotificationsQueryHandler reads the notification feed straight from
// the database. Uses direct SQL for the read side; the write side goes
// through the repositories.
type GetOrderNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderNotificationsQueryHandler creates a handler for feed queries.
// Requires a GORM database connection for query execution.
func NewGetOrderNotificationsQueryHandler(db *gorm.DB) GetOrderNotificationsQueryHandler {
	return GetOrderNotificationsQueryHandler{db: db}
}

// Handle returns the order's notifications oldest first. An order with no
// notifications yields an empty slice, not an error.
func (h GetOrderNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderNotificationsQuery,
) ([]GetOrderNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetOrderNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			message,
			amount,
			is_read,
			created_at
		FROM notifications
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderNotificationsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&entry.Status,
			&entry.Message,
			&entry.Amount,
			&entry.IsRead,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		notifications = append(notifications, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
