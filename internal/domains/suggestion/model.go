package suggestion

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the suggester's urgency signal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the review state of a suggestion.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Suggestion is a book acquisition request submitted by a teacher.
type Suggestion struct {
	ID              uuid.UUID  `json:"id"`
	SuggesterID     uuid.UUID  `json:"suggester_id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Reason          string     `json:"reason"`
	Priority        Priority   `json:"priority"`
	Status          Status     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// SuggestionDetail is the listing shape with suggester context joined in.
type SuggestionDetail struct {
	Suggestion
	SuggesterName string `json:"suggester_name"`
}
