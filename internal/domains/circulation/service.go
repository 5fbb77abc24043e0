package circulation

import (
	"context"

	"github.com/google/uuid"
)

// Notifier pushes lifecycle events to borrowers. Implemented by the
// notification domain; wired in the container.
type Notifier interface {
	NotifyOverdue(ctx context.Context, userID uuid.UUID, bookTitle string) error
	NotifyFine(ctx context.Context, userID uuid.UUID, amount string) error
}

// ReservationFulfiller closes a matching reservation when its holder
// borrows the book. Implemented by the reservation domain.
type ReservationFulfiller interface {
	FulfillOnBorrow(ctx context.Context, userID, bookID uuid.UUID) error
}

// Service is the business contract for the borrow/return/fine
// lifecycle. Role checks happen at the router; every operation here
// assumes an authenticated caller.
type Service interface {
	// Borrow checks the borrow limit, then unpaid fines, then claims an
	// available copy. The three refusals are distinct errors.
	Borrow(ctx context.Context, userID uuid.UUID, req BorrowRequest) (*Borrow, error)

	// Return closes an open loan exactly once, computing the late fine
	// and applying an optional staff override.
	Return(ctx context.Context, borrowID uuid.UUID, req ReturnRequest) (*ReturnResponse, error)

	// PayFine settles an unpaid fine exactly once.
	PayFine(ctx context.Context, fineID uuid.UUID) (*Fine, error)

	GetBorrow(ctx context.Context, borrowID uuid.UUID) (*Borrow, error)
	ListBorrows(ctx context.Context, req ListBorrowsRequest) ([]BorrowDetail, int, error)
	ListFines(ctx context.Context, req ListFinesRequest) ([]FineDetail, int, error)

	// SweepOverdue is the scheduled job entry point: flags overdue loans
	// and notifies their borrowers. Returns the number flagged.
	SweepOverdue(ctx context.Context, batchSize int) (int, error)
}
