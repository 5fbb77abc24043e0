package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/notification"
)

type notificationService struct {
	repo notification.Repository
	now  func() time.Time
}

// NewNotificationService wires the in-app notification service.
func NewNotificationService(repo notification.Repository) notification.Service {
	return &notificationService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, typ notification.Type, title, message string) error {
	n := &notification.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}

	return s.repo.Create(ctx, n)
}

func (s *notificationService) NotifyOverdue(ctx context.Context, userID uuid.UUID, bookTitle string) error {
	return s.Notify(ctx, userID, notification.TypeOverdue,
		"Book overdue",
		fmt.Sprintf("Your borrowed book %q is overdue. Please return it to avoid further fines.", bookTitle),
	)
}

func (s *notificationService) NotifyFine(ctx context.Context, userID uuid.UUID, amount string) error {
	return s.Notify(ctx, userID, notification.TypeFine,
		"Late return fine",
		fmt.Sprintf("A fine of %s has been added to your account for a late return.", amount),
	)
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]notification.Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.repo.ListByUser(ctx, userID, unreadOnly, page, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) CleanupOld(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		olderThanDays = 30
	}
	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	return s.repo.DeleteReadOlderThan(ctx, cutoff)
}
