package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/domains/circulation"
)

type circulationService struct {
	repo       circulation.Repository
	policy     config.PolicyConfig
	finePolicy circulation.FinePolicy
	notifier   circulation.Notifier
	fulfiller  circulation.ReservationFulfiller
	now        func() time.Time
}

// NewCirculationService wires the circulation service. notifier and
// fulfiller may be nil in contexts that do not need them (tests, CLI
// tooling); the lifecycle itself never depends on either succeeding.
func NewCirculationService(
	repo circulation.Repository,
	policy config.PolicyConfig,
	notifier circulation.Notifier,
	fulfiller circulation.ReservationFulfiller,
) circulation.Service {
	return &circulationService{
		repo:       repo,
		policy:     policy,
		finePolicy: circulation.NewFinePolicy(policy.FinePerDay, policy.FineCap),
		notifier:   notifier,
		fulfiller:  fulfiller,
		now:        time.Now,
	}
}

// ========================================
// BORROW
// ========================================

// Borrow enforces the lending policy in a fixed order so callers can
// rely on which refusal they see first: borrow limit, then unpaid
// fines, then copy availability. The copy claim itself is atomic, so a
// stale availability read can not hand the same copy to two users.
func (s *circulationService) Borrow(ctx context.Context, userID uuid.UUID, req circulation.BorrowRequest) (*circulation.Borrow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bookID, err := req.BookUUID()
	if err != nil {
		return nil, err
	}

	open, err := s.repo.CountOpenBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open >= s.policy.BorrowLimit {
		return nil, circulation.ErrBorrowLimit
	}

	unpaid, err := s.repo.CountUnpaidFines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if unpaid > 0 {
		return nil, circulation.ErrUnpaidFines
	}

	now := s.now()
	dueDate := now.AddDate(0, 0, s.policy.BorrowDays)
	if req.DueDate != nil {
		if !req.DueDate.After(now) {
			return nil, circulation.ErrDueDateNotFuture
		}
		dueDate = *req.DueDate
	}

	b := &circulation.Borrow{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    dueDate,
		Status:     circulation.BorrowActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateBorrowClaimingCopy(ctx, b); err != nil {
		return nil, err
	}

	// A reservation held by this user on this book is satisfied by the
	// borrow. Best effort: the loan stands either way.
	if s.fulfiller != nil {
		if err := s.fulfiller.FulfillOnBorrow(ctx, userID, bookID); err != nil {
			log.Warn().Err(err).
				Str("user_id", userID.String()).
				Str("book_id", bookID.String()).
				Msg("failed to fulfill reservation on borrow")
		}
	}

	return b, nil
}

// ========================================
// RETURN
// ========================================

// Return closes the loan exactly once. The fine is computed from whole
// days late; a staff override replaces the computed amount, and an
// override of zero records no fine at all.
func (s *circulationService) Return(ctx context.Context, borrowID uuid.UUID, req circulation.ReturnRequest) (*circulation.ReturnResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindBorrowByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if b.Status == circulation.BorrowReturned {
		return nil, circulation.ErrAlreadyReturned
	}

	now := s.now()
	amount := circulation.CalculateFine(b.DueDate, now, s.finePolicy)
	if req.FineOverride != nil {
		amount = *req.FineOverride
	}

	var fine *circulation.Fine
	if amount.IsPositive() {
		fine = &circulation.Fine{
			ID:        uuid.New(),
			BorrowID:  b.ID,
			UserID:    b.UserID,
			Amount:    amount,
			Status:    circulation.FineUnpaid,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if err := s.repo.CompleteReturn(ctx, borrowID, now, fine); err != nil {
		return nil, err
	}

	b.ReturnDate = &now
	b.Status = circulation.BorrowReturned
	b.UpdatedAt = now

	if fine != nil && s.notifier != nil {
		if err := s.notifier.NotifyFine(ctx, b.UserID, fine.Amount.StringFixed(2)); err != nil {
			log.Warn().Err(err).
				Str("borrow_id", b.ID.String()).
				Msg("failed to send fine notification")
		}
	}

	return &circulation.ReturnResponse{
		Borrow: b,
		Fine:   fine,
	}, nil
}

// ========================================
// FINES
// ========================================

func (s *circulationService) PayFine(ctx context.Context, fineID uuid.UUID) (*circulation.Fine, error) {
	if err := s.repo.MarkFinePaid(ctx, fineID, s.now()); err != nil {
		return nil, err
	}

	return s.repo.FindFineByID(ctx, fineID)
}

// ========================================
// QUERIES
// ========================================

func (s *circulationService) GetBorrow(ctx context.Context, borrowID uuid.UUID) (*circulation.Borrow, error) {
	return s.repo.FindBorrowByID(ctx, borrowID)
}

func (s *circulationService) ListBorrows(ctx context.Context, req circulation.ListBorrowsRequest) ([]circulation.BorrowDetail, int, error) {
	req.SetDefaults()
	return s.repo.ListBorrows(ctx, req)
}

func (s *circulationService) ListFines(ctx context.Context, req circulation.ListFinesRequest) ([]circulation.FineDetail, int, error) {
	req.SetDefaults()
	return s.repo.ListFines(ctx, req)
}

// ========================================
// OVERDUE SWEEP
// ========================================

func (s *circulationService) SweepOverdue(ctx context.Context, batchSize int) (int, error) {
	flagged, err := s.repo.MarkOverdueBorrows(ctx, s.now(), batchSize)
	if err != nil {
		return 0, err
	}

	if s.notifier != nil {
		for _, o := range flagged {
			if err := s.notifier.NotifyOverdue(ctx, o.UserID, o.BookTitle); err != nil {
				log.Warn().Err(err).
					Str("borrow_id", o.BorrowID.String()).
					Msg("failed to send overdue notification")
			}
		}
	}

	return len(flagged), nil
}
