package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog"
	"library-backend/internal/domains/circulation"
	"library-backend/internal/domains/reporting"
	"library-backend/internal/domains/reservation"
	"library-backend/internal/domains/user"
	"library-backend/pkg/cache"
)

const dashboardCacheTTL = time.Minute

type reportingService struct {
	users        user.Repository
	books        catalog.Repository
	borrows      circulation.Repository
	reservations reservation.Repository
	cache        cache.Cache
	borrowLimit  int
}

// NewReportingService composes the read models of the other domains.
func NewReportingService(
	users user.Repository,
	books catalog.Repository,
	borrows circulation.Repository,
	reservations reservation.Repository,
	cache cache.Cache,
	borrowLimit int,
) reporting.Service {
	return &reportingService{
		users:        users,
		books:        books,
		borrows:      borrows,
		reservations: reservations,
		cache:        cache,
		borrowLimit:  borrowLimit,
	}
}

// Dashboard is a pile of counts; cached for a minute because the admin
// landing page polls it.
func (s *reportingService) Dashboard(ctx context.Context) (*reporting.DashboardStats, error) {
	const cacheKey = "reporting:dashboard"

	var stats reporting.DashboardStats
	if found, err := s.cache.Get(ctx, cacheKey, &stats); err == nil && found {
		return &stats, nil
	}

	var err error
	if stats.TotalBooks, err = s.books.CountBooks(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableCopies, err = s.books.CountCopiesByStatus(ctx, catalog.CopyAvailable); err != nil {
		return nil, err
	}
	if stats.IssuedCopies, err = s.books.CountCopiesByStatus(ctx, catalog.CopyIssued); err != nil {
		return nil, err
	}
	if stats.DamagedCopies, err = s.books.CountCopiesByStatus(ctx, catalog.CopyDamaged); err != nil {
		return nil, err
	}
	if stats.ActiveBorrows, err = s.borrows.CountBorrowsByStatus(ctx, circulation.BorrowActive); err != nil {
		return nil, err
	}
	if stats.OverdueBorrows, err = s.borrows.CountBorrowsByStatus(ctx, circulation.BorrowOverdue); err != nil {
		return nil, err
	}
	if stats.ActiveHolds, err = s.reservations.CountByStatus(ctx, reservation.StatusActive); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = s.users.CountByRole(ctx, user.RoleStudent); err != nil {
		return nil, err
	}
	if stats.TotalTeachers, err = s.users.CountByRole(ctx, user.RoleTeacher); err != nil {
		return nil, err
	}
	if stats.UnpaidFinesTotal, err = s.borrows.SumUnpaidFines(ctx); err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, &stats, dashboardCacheTTL)

	return &stats, nil
}

func (s *reportingService) UserSummary(ctx context.Context, userID uuid.UUID) (*reporting.UserSummary, error) {
	open, err := s.borrows.CountOpenBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.borrows.CountUnpaidFines(ctx, userID)
	if err != nil {
		return nil, err
	}

	holds, err := s.reservations.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &reporting.UserSummary{
		OpenBorrows: open,
		UnpaidFines: unpaid,
		ActiveHolds: holds,
		BorrowLimit: s.borrowLimit,
	}, nil
}
