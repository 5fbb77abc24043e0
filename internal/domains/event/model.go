package event

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies library events.
type Type string

const (
	TypeSeminar  Type = "seminar"
	TypeWorkshop Type = "workshop"
	TypeOther    Type = "other"
)

// Status is the approval state. Teachers propose events; admins decide.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Event is a library event proposed by a teacher.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	OrganizerID uuid.UUID  `json:"organizer_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	EventDate   time.Time  `json:"event_date"`
	Location    string     `json:"location"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// EventDetail is the listing shape with organizer context joined in.
type EventDetail struct {
	Event
	OrganizerName string `json:"organizer_name"`
}
