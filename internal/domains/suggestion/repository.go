package suggestion

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for suggestions.
type Repository interface {
	Create(ctx context.Context, s *Suggestion) error
	FindByID(ctx context.Context, id uuid.UUID) (*Suggestion, error)
	List(ctx context.Context, req ListSuggestionsRequest) ([]SuggestionDetail, int, error)

	// Decide transitions a pending suggestion; rejectionReason is only
	// stored for rejections.
	Decide(ctx context.Context, id uuid.UUID, status Status, rejectionReason *string) error
}
