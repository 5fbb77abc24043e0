package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/reservation"
)

type mockReservationRepo struct {
	hasActive bool
	created   *reservation.Reservation
	found     *reservation.Reservation
	canceled  []uuid.UUID
}

func (m *mockReservationRepo) Create(ctx context.Context, r *reservation.Reservation) error {
	m.created = r
	return nil
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if m.found == nil {
		return nil, reservation.ErrReservationNotFound
	}
	return m.found, nil
}

func (m *mockReservationRepo) List(ctx context.Context, req reservation.ListReservationsRequest) ([]reservation.ReservationDetail, int, error) {
	return nil, 0, nil
}

func (m *mockReservationRepo) HasActiveForBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	return m.hasActive, nil
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	m.canceled = append(m.canceled, id)
	return nil
}

func (m *mockReservationRepo) Fulfill(ctx context.Context, userID, bookID uuid.UUID) (int, error) {
	return 0, nil
}

func (m *mockReservationRepo) ExpireOlderThan(ctx context.Context, asOf time.Time) (int, error) {
	return 0, nil
}

func (m *mockReservationRepo) CountByStatus(ctx context.Context, status reservation.Status) (int, error) {
	return 0, nil
}

func (m *mockReservationRepo) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func TestCreateReservationSetsExpiry(t *testing.T) {
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{}
	svc := NewReservationService(repo, 7)
	svc.(*reservationService).now = func() time.Time { return now }

	res, err := svc.Create(context.Background(), uuid.New(), reservation.CreateReservationRequest{
		BookID: uuid.NewString(),
	})

	require.NoError(t, err)
	assert.Equal(t, reservation.StatusActive, res.Status)
	assert.Equal(t, now.AddDate(0, 0, 7), res.ExpiryDate)
}

func TestCreateReservationRejectsDuplicate(t *testing.T) {
	repo := &mockReservationRepo{hasActive: true}
	svc := NewReservationService(repo, 7)

	_, err := svc.Create(context.Background(), uuid.New(), reservation.CreateReservationRequest{
		BookID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, reservation.ErrDuplicateActive)
	assert.Nil(t, repo.created)
}

func TestCancelRequiresOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	repo := &mockReservationRepo{
		found: &reservation.Reservation{
			ID:     uuid.New(),
			UserID: owner,
			Status: reservation.StatusActive,
		},
	}
	svc := NewReservationService(repo, 7)

	err := svc.Cancel(context.Background(), stranger, repo.found.ID)
	assert.ErrorIs(t, err, reservation.ErrNotOwner)
	assert.Empty(t, repo.canceled)

	err = svc.Cancel(context.Background(), owner, repo.found.ID)
	require.NoError(t, err)
	assert.Len(t, repo.canceled, 1)
}

func TestCancelUnknownReservation(t *testing.T) {
	svc := NewReservationService(&mockReservationRepo{}, 7)

	err := svc.Cancel(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}
