package event

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for events.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, req ListEventsRequest) ([]EventDetail, int, error)

	// Decide transitions a pending event to approved or rejected.
	Decide(ctx context.Context, id uuid.UUID, status Status) error

	Delete(ctx context.Context, id uuid.UUID) error
}
