package event

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for library events.
type Service interface {
	Create(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*Event, error)
	List(ctx context.Context, req ListEventsRequest) ([]EventDetail, int, error)
	Approve(ctx context.Context, eventID uuid.UUID) (*Event, error)
	Reject(ctx context.Context, eventID uuid.UUID) (*Event, error)
	Delete(ctx context.Context, organizerID, eventID uuid.UUID, isAdmin bool) error
}
