package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data access contract for reservations.
type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, req ListReservationsRequest) ([]ReservationDetail, int, error)
	HasActiveForBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error)

	// Cancel soft-deletes an active reservation.
	Cancel(ctx context.Context, id uuid.UUID) error

	// Fulfill closes the user's active reservation for the book, if one
	// exists. Returns the number of reservations closed (0 or 1).
	Fulfill(ctx context.Context, userID, bookID uuid.UUID) (int, error)

	// ExpireOlderThan flags active reservations whose expiry date has
	// passed. Returns the number expired.
	ExpireOlderThan(ctx context.Context, asOf time.Time) (int, error)

	CountByStatus(ctx context.Context, status Status) (int, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
