package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies in-app notifications for client-side grouping.
type Type string

const (
	TypeOverdue     Type = "overdue"
	TypeFine        Type = "fine"
	TypeReservation Type = "reservation"
	TypeSuggestion  Type = "suggestion"
	TypeEvent       Type = "event"
	TypeGeneral     Type = "general"
)

// Notification is a single in-app message for one user.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
