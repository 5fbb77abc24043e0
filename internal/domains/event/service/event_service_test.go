package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/event"
)

type mockEventRepo struct {
	events  map[uuid.UUID]*event.Event
	deleted []uuid.UUID
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: map[uuid.UUID]*event.Event{}}
}

func (m *mockEventRepo) Create(ctx context.Context, e *event.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, event.ErrEventNotFound
}

func (m *mockEventRepo) List(ctx context.Context, req event.ListEventsRequest) ([]event.EventDetail, int, error) {
	return nil, 0, nil
}

func (m *mockEventRepo) Decide(ctx context.Context, id uuid.UUID, status event.Status) error {
	e, ok := m.events[id]
	if !ok {
		return event.ErrEventNotFound
	}
	if e.Status != event.StatusPending {
		return event.ErrNotPending
	}
	e.Status = status
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func seedEvent(repo *mockEventRepo, organizerID uuid.UUID) *event.Event {
	e := &event.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       "Reading circle",
		Type:        event.TypeSeminar,
		EventDate:   time.Now().AddDate(0, 0, 7),
		Status:      event.StatusPending,
	}
	repo.events[e.ID] = e
	return e
}

func TestCreateEventStartsPending(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo, nil)

	e, err := svc.Create(context.Background(), uuid.New(), event.CreateEventRequest{
		Title:     "Poetry workshop",
		Type:      event.TypeWorkshop,
		EventDate: time.Now().AddDate(0, 0, 3),
		Location:  "Room 2",
	})

	require.NoError(t, err)
	assert.Equal(t, event.StatusPending, e.Status)
}

func TestDecideIsOneShot(t *testing.T) {
	repo := newMockEventRepo()
	e := seedEvent(repo, uuid.New())
	svc := NewEventService(repo, nil)

	approved, err := svc.Approve(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, event.StatusApproved, approved.Status)

	_, err = svc.Reject(context.Background(), e.ID)
	assert.ErrorIs(t, err, event.ErrNotPending)
}

func TestDeleteChecksOwnership(t *testing.T) {
	repo := newMockEventRepo()
	organizer := uuid.New()
	e := seedEvent(repo, organizer)
	svc := NewEventService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New(), e.ID, false)
	assert.ErrorIs(t, err, event.ErrNotOwner)
	assert.Empty(t, repo.deleted)

	err = svc.Delete(context.Background(), organizer, e.ID, false)
	require.NoError(t, err)
	assert.Len(t, repo.deleted, 1)
}

func TestDeleteAllowsAdminOverride(t *testing.T) {
	repo := newMockEventRepo()
	e := seedEvent(repo, uuid.New())
	svc := NewEventService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New(), e.ID, true)
	require.NoError(t, err)
	assert.Len(t, repo.deleted, 1)
}
