package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	"library-backend/internal/domains/circulation"
)

// mockRepo is a hand-rolled repository double: each method delegates to
// an optional func field, so tests only stub what they touch.
type mockRepo struct {
	countOpenBorrowsFn func(ctx context.Context, userID uuid.UUID) (int, error)
	countUnpaidFinesFn func(ctx context.Context, userID uuid.UUID) (int, error)
	createBorrowFn     func(ctx context.Context, b *circulation.Borrow) error
	findBorrowFn       func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error)
	completeReturnFn   func(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error
	findFineFn         func(ctx context.Context, id uuid.UUID) (*circulation.Fine, error)
	markFinePaidFn     func(ctx context.Context, fineID uuid.UUID, paidAt time.Time) error
	markOverdueFn      func(ctx context.Context, asOf time.Time, batchSize int) ([]circulation.OverdueBorrow, error)

	countUnpaidCalled bool
	createCalled      bool
}

func (m *mockRepo) CountOpenBorrows(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.countOpenBorrowsFn != nil {
		return m.countOpenBorrowsFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockRepo) CountUnpaidFines(ctx context.Context, userID uuid.UUID) (int, error) {
	m.countUnpaidCalled = true
	if m.countUnpaidFinesFn != nil {
		return m.countUnpaidFinesFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockRepo) CreateBorrowClaimingCopy(ctx context.Context, b *circulation.Borrow) error {
	m.createCalled = true
	if m.createBorrowFn != nil {
		return m.createBorrowFn(ctx, b)
	}
	return nil
}

func (m *mockRepo) FindBorrowByID(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
	if m.findBorrowFn != nil {
		return m.findBorrowFn(ctx, id)
	}
	return nil, circulation.ErrBorrowNotFound
}

func (m *mockRepo) ListBorrows(ctx context.Context, req circulation.ListBorrowsRequest) ([]circulation.BorrowDetail, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) CompleteReturn(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
	if m.completeReturnFn != nil {
		return m.completeReturnFn(ctx, borrowID, returnDate, fine)
	}
	return nil
}

func (m *mockRepo) FindFineByID(ctx context.Context, id uuid.UUID) (*circulation.Fine, error) {
	if m.findFineFn != nil {
		return m.findFineFn(ctx, id)
	}
	return nil, circulation.ErrFineNotFound
}

func (m *mockRepo) ListFines(ctx context.Context, req circulation.ListFinesRequest) ([]circulation.FineDetail, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) MarkFinePaid(ctx context.Context, fineID uuid.UUID, paidAt time.Time) error {
	if m.markFinePaidFn != nil {
		return m.markFinePaidFn(ctx, fineID, paidAt)
	}
	return nil
}

func (m *mockRepo) MarkOverdueBorrows(ctx context.Context, asOf time.Time, batchSize int) ([]circulation.OverdueBorrow, error) {
	if m.markOverdueFn != nil {
		return m.markOverdueFn(ctx, asOf, batchSize)
	}
	return nil, nil
}

func (m *mockRepo) CountBorrowsByStatus(ctx context.Context, status circulation.BorrowStatus) (int, error) {
	return 0, nil
}

func (m *mockRepo) SumUnpaidFines(ctx context.Context) (string, error) {
	return "0", nil
}

type mockNotifier struct {
	overdue []uuid.UUID
	fines   []string
	err     error
}

func (m *mockNotifier) NotifyOverdue(ctx context.Context, userID uuid.UUID, bookTitle string) error {
	m.overdue = append(m.overdue, userID)
	return m.err
}

func (m *mockNotifier) NotifyFine(ctx context.Context, userID uuid.UUID, amount string) error {
	m.fines = append(m.fines, amount)
	return m.err
}

type mockFulfiller struct {
	called bool
	err    error
}

func (m *mockFulfiller) FulfillOnBorrow(ctx context.Context, userID, bookID uuid.UUID) error {
	m.called = true
	return m.err
}

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		BorrowLimit:     3,
		BorrowDays:      14,
		FinePerDay:      5,
		FineCap:         50,
		ReservationDays: 7,
	}
}

func newTestService(repo *mockRepo, notifier circulation.Notifier, fulfiller circulation.ReservationFulfiller, now time.Time) circulation.Service {
	svc := NewCirculationService(repo, testPolicy(), notifier, fulfiller)
	svc.(*circulationService).now = func() time.Time { return now }
	return svc
}

func TestBorrowChecksLimitBeforeFines(t *testing.T) {
	repo := &mockRepo{
		countOpenBorrowsFn: func(ctx context.Context, userID uuid.UUID) (int, error) {
			return 3, nil
		},
		countUnpaidFinesFn: func(ctx context.Context, userID uuid.UUID) (int, error) {
			return 2, nil
		},
	}
	svc := newTestService(repo, nil, nil, time.Now())

	_, err := svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{BookID: uuid.NewString()})

	assert.ErrorIs(t, err, circulation.ErrBorrowLimit)
	assert.False(t, repo.countUnpaidCalled, "fine check must not run once the limit refuses")
	assert.False(t, repo.createCalled)
}

func TestBorrowRefusesUnpaidFines(t *testing.T) {
	repo := &mockRepo{
		countUnpaidFinesFn: func(ctx context.Context, userID uuid.UUID) (int, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo, nil, nil, time.Now())

	_, err := svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{BookID: uuid.NewString()})

	assert.ErrorIs(t, err, circulation.ErrUnpaidFines)
	assert.False(t, repo.createCalled)
}

func TestBorrowRefusesWhenNoCopyAvailable(t *testing.T) {
	repo := &mockRepo{
		createBorrowFn: func(ctx context.Context, b *circulation.Borrow) error {
			return circulation.ErrNoCopyAvailable
		},
	}
	svc := newTestService(repo, nil, nil, time.Now())

	_, err := svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{BookID: uuid.NewString()})

	assert.ErrorIs(t, err, circulation.ErrNoCopyAvailable)
}

func TestBorrowSetsDueDateAndFulfillsReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &mockRepo{}
	fulfiller := &mockFulfiller{}
	svc := newTestService(repo, nil, fulfiller, now)

	userID := uuid.New()
	b, err := svc.Borrow(context.Background(), userID, circulation.BorrowRequest{BookID: uuid.NewString()})

	require.NoError(t, err)
	assert.Equal(t, userID, b.UserID)
	assert.Equal(t, circulation.BorrowActive, b.Status)
	assert.Equal(t, now.AddDate(0, 0, 14), b.DueDate)
	assert.True(t, fulfiller.called)
}

func TestBorrowHonorsRequestedDueDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(&mockRepo{}, nil, nil, now)

	requested := now.AddDate(0, 0, 7)
	b, err := svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{
		BookID:  uuid.NewString(),
		DueDate: &requested,
	})

	require.NoError(t, err)
	assert.Equal(t, requested, b.DueDate)

	past := now.AddDate(0, 0, -1)
	_, err = svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{
		BookID:  uuid.NewString(),
		DueDate: &past,
	})
	assert.ErrorIs(t, err, circulation.ErrDueDateNotFuture)
}

func TestBorrowSurvivesFulfillerFailure(t *testing.T) {
	repo := &mockRepo{}
	fulfiller := &mockFulfiller{err: assert.AnError}
	svc := newTestService(repo, nil, fulfiller, time.Now())

	_, err := svc.Borrow(context.Background(), uuid.New(), circulation.BorrowRequest{BookID: uuid.NewString()})

	assert.NoError(t, err, "the loan stands even when reservation fulfillment fails")
}

func openBorrow(due time.Time) *circulation.Borrow {
	return &circulation.Borrow{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		BookID:  uuid.New(),
		CopyID:  uuid.New(),
		DueDate: due,
		Status:  circulation.BorrowActive,
	}
}

func TestReturnOnTimeRecordsNoFine(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	var recorded *circulation.Fine
	repo := &mockRepo{
		findBorrowFn: func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
			return openBorrow(now.AddDate(0, 0, 2)), nil
		},
		completeReturnFn: func(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
			recorded = fine
			return nil
		},
	}
	svc := newTestService(repo, nil, nil, now)

	resp, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{})

	require.NoError(t, err)
	assert.Nil(t, recorded)
	assert.Nil(t, resp.Fine)
	assert.Equal(t, circulation.BorrowReturned, resp.Borrow.Status)
	require.NotNil(t, resp.Borrow.ReturnDate)
	assert.Equal(t, now, *resp.Borrow.ReturnDate)
}

func TestReturnLateCreatesFineAndNotifies(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	var recorded *circulation.Fine
	repo := &mockRepo{
		findBorrowFn: func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
			return openBorrow(now.AddDate(0, 0, -3)), nil
		},
		completeReturnFn: func(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
			recorded = fine
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier, nil, now)

	resp, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{})

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.True(t, recorded.Amount.Equal(decimal.NewFromInt(15)), "3 days at 5 per day")
	assert.Equal(t, circulation.FineUnpaid, recorded.Status)
	assert.Equal(t, resp.Borrow.UserID, recorded.UserID)
	assert.Equal(t, []string{"15.00"}, notifier.fines)
}

func TestReturnOverrideReplacesComputedFine(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	var recorded *circulation.Fine
	repo := &mockRepo{
		findBorrowFn: func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
			return openBorrow(now.AddDate(0, 0, -10)), nil
		},
		completeReturnFn: func(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
			recorded = fine
			return nil
		},
	}
	svc := newTestService(repo, nil, nil, now)

	override := decimal.NewFromInt(20)
	_, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{FineOverride: &override})

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.True(t, recorded.Amount.Equal(override))
}

func TestReturnZeroOverrideWaivesFine(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	var recorded *circulation.Fine
	repo := &mockRepo{
		findBorrowFn: func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
			return openBorrow(now.AddDate(0, 0, -10)), nil
		},
		completeReturnFn: func(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
			recorded = fine
			return nil
		},
	}
	svc := newTestService(repo, nil, nil, now)

	zero := decimal.Zero
	resp, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{FineOverride: &zero})

	require.NoError(t, err)
	assert.Nil(t, recorded)
	assert.Nil(t, resp.Fine)
}

func TestReturnRejectsNegativeOverride(t *testing.T) {
	svc := newTestService(&mockRepo{}, nil, nil, time.Now())

	neg := decimal.NewFromInt(-5)
	_, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{FineOverride: &neg})

	assert.ErrorIs(t, err, circulation.ErrNegativeOverride)
}

func TestReturnAlreadyReturned(t *testing.T) {
	now := time.Now()
	repo := &mockRepo{
		findBorrowFn: func(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
			b := openBorrow(now)
			b.Status = circulation.BorrowReturned
			return b, nil
		},
	}
	svc := newTestService(repo, nil, nil, now)

	_, err := svc.Return(context.Background(), uuid.New(), circulation.ReturnRequest{})

	assert.ErrorIs(t, err, circulation.ErrAlreadyReturned)
}

func TestPayFineExactlyOnce(t *testing.T) {
	fineID := uuid.New()
	paid := false
	repo := &mockRepo{
		markFinePaidFn: func(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
			if paid {
				return circulation.ErrFineAlreadyPaid
			}
			paid = true
			return nil
		},
		findFineFn: func(ctx context.Context, id uuid.UUID) (*circulation.Fine, error) {
			return &circulation.Fine{ID: id, Status: circulation.FinePaid}, nil
		},
	}
	svc := newTestService(repo, nil, nil, time.Now())

	fine, err := svc.PayFine(context.Background(), fineID)
	require.NoError(t, err)
	assert.Equal(t, circulation.FinePaid, fine.Status)

	_, err = svc.PayFine(context.Background(), fineID)
	assert.ErrorIs(t, err, circulation.ErrFineAlreadyPaid)
}

func TestSweepOverdueNotifiesEachBorrower(t *testing.T) {
	flagged := []circulation.OverdueBorrow{
		{BorrowID: uuid.New(), UserID: uuid.New(), BookTitle: "Dune"},
		{BorrowID: uuid.New(), UserID: uuid.New(), BookTitle: "Hyperion"},
	}
	repo := &mockRepo{
		markOverdueFn: func(ctx context.Context, asOf time.Time, batchSize int) ([]circulation.OverdueBorrow, error) {
			return flagged, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier, nil, time.Now())

	n, err := svc.SweepOverdue(context.Background(), 500)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, notifier.overdue, 2)
}
