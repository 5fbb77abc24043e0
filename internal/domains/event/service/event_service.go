package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/event"
	"library-backend/internal/domains/notification"
)

type eventService struct {
	repo     event.Repository
	notifier notification.Service
	now      func() time.Time
}

// NewEventService wires the event service. notifier may be nil.
func NewEventService(repo event.Repository, notifier notification.Service) event.Service {
	return &eventService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID uuid.UUID, req event.CreateEventRequest) (*event.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	e := &event.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Status:      event.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *eventService) List(ctx context.Context, req event.ListEventsRequest) ([]event.EventDetail, int, error) {
	req.SetDefaults()
	return s.repo.List(ctx, req)
}

func (s *eventService) Approve(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	return s.decide(ctx, eventID, event.StatusApproved)
}

func (s *eventService) Reject(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	return s.decide(ctx, eventID, event.StatusRejected)
}

func (s *eventService) decide(ctx context.Context, eventID uuid.UUID, status event.Status) (*event.Event, error) {
	if err := s.repo.Decide(ctx, eventID, status); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Your event %q has been %s.", e.Title, status)
		if err := s.notifier.Notify(ctx, e.OrganizerID, notification.TypeEvent, "Event decision", msg); err != nil {
			log.Warn().Err(err).Str("event_id", eventID.String()).Msg("failed to notify organizer")
		}
	}

	return e, nil
}

// Delete allows the organizer to withdraw their own event; admins can
// remove any event.
func (s *eventService) Delete(ctx context.Context, organizerID, eventID uuid.UUID, isAdmin bool) error {
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	if !isAdmin && e.OrganizerID != organizerID {
		return event.ErrNotOwner
	}

	return s.repo.Delete(ctx, eventID)
}
