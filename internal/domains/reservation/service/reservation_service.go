package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/reservation"
)

type reservationService struct {
	repo            reservation.Repository
	reservationDays int
	now             func() time.Time
}

// NewReservationService wires the hold service.
func NewReservationService(repo reservation.Repository, reservationDays int) reservation.Service {
	return &reservationService{
		repo:            repo,
		reservationDays: reservationDays,
		now:             time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, userID uuid.UUID, req reservation.CreateReservationRequest) (*reservation.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bookID, err := req.BookUUID()
	if err != nil {
		return nil, err
	}

	// Application-level check for a friendly error; the partial unique
	// index is the real guard against concurrent duplicates.
	exists, err := s.repo.HasActiveForBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, reservation.ErrDuplicateActive
	}

	now := s.now()
	res := &reservation.Reservation{
		ID:              uuid.New(),
		UserID:          userID,
		BookID:          bookID,
		ReservationDate: now,
		ExpiryDate:      now.AddDate(0, 0, s.reservationDays),
		Status:          reservation.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

// Cancel lets a user withdraw their own hold. Ownership is checked
// here, not in middleware, because the resource id alone does not
// reveal the owner.
func (s *reservationService) Cancel(ctx context.Context, userID, reservationID uuid.UUID) error {
	res, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}

	if res.UserID != userID {
		return reservation.ErrNotOwner
	}

	return s.repo.Cancel(ctx, reservationID)
}

func (s *reservationService) List(ctx context.Context, req reservation.ListReservationsRequest) ([]reservation.ReservationDetail, int, error) {
	req.SetDefaults()
	return s.repo.List(ctx, req)
}

func (s *reservationService) FulfillOnBorrow(ctx context.Context, userID, bookID uuid.UUID) error {
	_, err := s.repo.Fulfill(ctx, userID, bookID)
	return err
}

func (s *reservationService) ExpireStale(ctx context.Context) (int, error) {
	return s.repo.ExpireOlderThan(ctx, s.now())
}
