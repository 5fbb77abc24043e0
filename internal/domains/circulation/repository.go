package circulation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data access contract for loans and fines. The
// multi-row operations (claim, return) run inside a single database
// transaction in the implementation.
type Repository interface {
	// CountOpenBorrows counts active plus overdue loans for a user.
	CountOpenBorrows(ctx context.Context, userID uuid.UUID) (int, error)
	// CountUnpaidFines counts fines still owed by a user.
	CountUnpaidFines(ctx context.Context, userID uuid.UUID) (int, error)

	// CreateBorrowClaimingCopy atomically claims one available copy of
	// the book and inserts the borrow row. Returns ErrNoCopyAvailable
	// when every copy is taken, including ones taken by a concurrent
	// request after the caller's availability check.
	CreateBorrowClaimingCopy(ctx context.Context, b *Borrow) error

	FindBorrowByID(ctx context.Context, id uuid.UUID) (*Borrow, error)
	ListBorrows(ctx context.Context, req ListBorrowsRequest) ([]BorrowDetail, int, error)

	// CompleteReturn closes the loan, releases the copy, and records the
	// fine (when non-nil) in one transaction. Returns ErrAlreadyReturned
	// when the loan was closed by an earlier call.
	CompleteReturn(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *Fine) error

	FindFineByID(ctx context.Context, id uuid.UUID) (*Fine, error)
	ListFines(ctx context.Context, req ListFinesRequest) ([]FineDetail, int, error)

	// MarkFinePaid flips an unpaid fine to paid exactly once. Returns
	// ErrFineAlreadyPaid on any later attempt.
	MarkFinePaid(ctx context.Context, fineID uuid.UUID, paidAt time.Time) error

	// MarkOverdueBorrows flags open loans past due, up to batchSize per
	// call, and returns the flagged set for notification fan-out.
	MarkOverdueBorrows(ctx context.Context, asOf time.Time, batchSize int) ([]OverdueBorrow, error)

	CountBorrowsByStatus(ctx context.Context, status BorrowStatus) (int, error)
	SumUnpaidFines(ctx context.Context) (string, error)
}
