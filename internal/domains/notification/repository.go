package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data access contract for in-app notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)

	// DeleteReadOlderThan purges read notifications past the retention
	// window. Returns the number deleted.
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
