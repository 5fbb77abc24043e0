package reservation

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for holds.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, userID, reservationID uuid.UUID) error
	List(ctx context.Context, req ListReservationsRequest) ([]ReservationDetail, int, error)

	// FulfillOnBorrow closes the user's active hold on a book when they
	// borrow it. Safe to call when no hold exists.
	FulfillOnBorrow(ctx context.Context, userID, bookID uuid.UUID) error

	// ExpireStale is the scheduled job entry point.
	ExpireStale(ctx context.Context) (int, error)
}
