package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/notification"
	"library-backend/internal/domains/suggestion"
)

type suggestionService struct {
	repo     suggestion.Repository
	notifier notification.Service
	now      func() time.Time
}

// NewSuggestionService wires the acquisition suggestion service.
// notifier may be nil.
func NewSuggestionService(repo suggestion.Repository, notifier notification.Service) suggestion.Service {
	return &suggestionService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *suggestionService) Create(ctx context.Context, suggesterID uuid.UUID, req suggestion.CreateSuggestionRequest) (*suggestion.Suggestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	sg := &suggestion.Suggestion{
		ID:          uuid.New(),
		SuggesterID: suggesterID,
		Title:       req.Title,
		Author:      req.Author,
		Reason:      req.Reason,
		Priority:    req.Priority,
		Status:      suggestion.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, sg); err != nil {
		return nil, err
	}

	return sg, nil
}

func (s *suggestionService) List(ctx context.Context, req suggestion.ListSuggestionsRequest) ([]suggestion.SuggestionDetail, int, error) {
	req.SetDefaults()
	return s.repo.List(ctx, req)
}

func (s *suggestionService) Approve(ctx context.Context, suggestionID uuid.UUID) (*suggestion.Suggestion, error) {
	if err := s.repo.Decide(ctx, suggestionID, suggestion.StatusApproved, nil); err != nil {
		return nil, err
	}

	sg, err := s.repo.FindByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, sg, "approved")
	return sg, nil
}

func (s *suggestionService) Reject(ctx context.Context, suggestionID uuid.UUID, req suggestion.RejectSuggestionRequest) (*suggestion.Suggestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Decide(ctx, suggestionID, suggestion.StatusRejected, &req.Reason); err != nil {
		return nil, err
	}

	sg, err := s.repo.FindByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, sg, "rejected")
	return sg, nil
}

func (s *suggestionService) notifyDecision(ctx context.Context, sg *suggestion.Suggestion, decision string) {
	if s.notifier == nil {
		return
	}

	msg := fmt.Sprintf("Your suggestion %q has been %s.", sg.Title, decision)
	if sg.RejectionReason != nil {
		msg = fmt.Sprintf("%s Reason: %s", msg, *sg.RejectionReason)
	}

	if err := s.notifier.Notify(ctx, sg.SuggesterID, notification.TypeSuggestion, "Suggestion decision", msg); err != nil {
		log.Warn().Err(err).Str("suggestion_id", sg.ID.String()).Msg("failed to notify suggester")
	}
}
