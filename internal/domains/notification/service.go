package notification

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for in-app notifications. The
// Notify* methods double as the circulation domain's Notifier.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, typ Type, title, message string) error
	NotifyOverdue(ctx context.Context, userID uuid.UUID, bookTitle string) error
	NotifyFine(ctx context.Context, userID uuid.UUID, amount string) error

	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)

	// CleanupOld is the scheduled job entry point.
	CleanupOld(ctx context.Context, olderThanDays int) (int, error)
}
