package suggestion

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for acquisition suggestions.
type Service interface {
	Create(ctx context.Context, suggesterID uuid.UUID, req CreateSuggestionRequest) (*Suggestion, error)
	List(ctx context.Context, req ListSuggestionsRequest) ([]SuggestionDetail, int, error)
	Approve(ctx context.Context, suggestionID uuid.UUID) (*Suggestion, error)
	Reject(ctx context.Context, suggestionID uuid.UUID, req RejectSuggestionRequest) (*Suggestion, error)
}
