package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	circulation "library-backend/internal/domains/circulation"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed circulation repository.
func NewPostgresRepository(pool *pgxpool.Pool) circulation.Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// PRECONDITION QUERIES
// ========================================

func (r *postgresRepository) CountOpenBorrows(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM borrows
		WHERE user_id = $1 AND status IN ('active', 'overdue')
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count open borrows: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) CountUnpaidFines(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM fines
		WHERE user_id = $1 AND status = 'unpaid'
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unpaid fines: %w", err)
	}

	return count, nil
}

// ========================================
// BORROW
// ========================================

// CreateBorrowClaimingCopy claims one available copy and writes the
// borrow row in a single transaction. The claim is a conditional update
// on the copy's status with FOR UPDATE SKIP LOCKED, so two concurrent
// requests for the last copy can never both succeed: one claims it, the
// other sees no claimable row and gets ErrNoCopyAvailable.
func (r *postgresRepository) CreateBorrowClaimingCopy(ctx context.Context, b *circulation.Borrow) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		claimQuery := `
			UPDATE book_copies
			SET status = 'issued', updated_at = NOW()
			WHERE id = (
				SELECT id FROM book_copies
				WHERE book_id = $1
				  AND status = 'available'
				  AND deleted_at IS NULL
				ORDER BY barcode
				LIMIT 1
				FOR UPDATE SKIP LOCKED
			)
			RETURNING id
		`

		var copyID uuid.UUID
		err := tx.QueryRow(ctx, claimQuery, b.BookID).Scan(&copyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return circulation.ErrNoCopyAvailable
			}
			return fmt.Errorf("claim copy: %w", err)
		}
		b.CopyID = copyID

		insertQuery := `
			INSERT INTO borrows (
				id, user_id, book_id, copy_id, borrow_date, due_date,
				status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err = tx.Exec(ctx, insertQuery,
			b.ID,
			b.UserID,
			b.BookID,
			b.CopyID,
			b.BorrowDate,
			b.DueDate,
			b.Status,
			b.CreatedAt,
			b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert borrow: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) FindBorrowByID(ctx context.Context, id uuid.UUID) (*circulation.Borrow, error) {
	query := `
		SELECT
			id, user_id, book_id, copy_id, borrow_date, due_date,
			return_date, status, created_at, updated_at
		FROM borrows
		WHERE id = $1
	`

	var b circulation.Borrow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.BookID,
		&b.CopyID,
		&b.BorrowDate,
		&b.DueDate,
		&b.ReturnDate,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, circulation.ErrBorrowNotFound
		}
		return nil, fmt.Errorf("find borrow by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) ListBorrows(ctx context.Context, req circulation.ListBorrowsRequest) ([]circulation.BorrowDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			br.id, br.user_id, br.book_id, br.copy_id,
			br.borrow_date, br.due_date, br.return_date, br.status,
			br.created_at, br.updated_at,
			b.title, b.author, c.barcode, u.full_name, u.email,
			f.id, f.borrow_id, f.user_id, f.amount, f.status,
			f.paid_date, f.created_at, f.updated_at
		FROM borrows br
		JOIN books b ON b.id = br.book_id
		JOIN book_copies c ON c.id = br.copy_id
		JOIN users u ON u.id = br.user_id
		LEFT JOIN fines f ON f.borrow_id = br.id
		WHERE 1 = 1
	`)

	args := []interface{}{}
	argPos := 1

	if req.UserID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND br.user_id = $%d", argPos))
		args = append(args, *req.UserID)
		argPos++
	}

	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND br.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count borrows: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY br.borrow_date DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list borrows: %w", err)
	}
	defer rows.Close()

	borrows := make([]circulation.BorrowDetail, 0, req.Limit)
	for rows.Next() {
		var d circulation.BorrowDetail
		// Every fine column is nullable because of the LEFT JOIN; most
		// loans have no fine.
		var (
			fineID        *uuid.UUID
			fineBorrowID  *uuid.UUID
			fineUserID    *uuid.UUID
			fineAmount    decimal.NullDecimal
			fineStatus    *string
			finePaidDate  *time.Time
			fineCreatedAt *time.Time
			fineUpdatedAt *time.Time
		)

		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.BookID,
			&d.CopyID,
			&d.BorrowDate,
			&d.DueDate,
			&d.ReturnDate,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.BookTitle,
			&d.BookAuthor,
			&d.CopyBarcode,
			&d.UserFullName,
			&d.UserEmail,
			&fineID,
			&fineBorrowID,
			&fineUserID,
			&fineAmount,
			&fineStatus,
			&finePaidDate,
			&fineCreatedAt,
			&fineUpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan borrow: %w", err)
		}

		d.Fine = assembleJoinedFine(fineID, fineBorrowID, fineUserID,
			fineAmount, fineStatus, finePaidDate, fineCreatedAt, fineUpdatedAt)

		borrows = append(borrows, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return borrows, total, nil
}

// assembleJoinedFine builds the optional fine attached to a listed
// borrow. A nil fine id means the joined fines row was absent; the
// remaining columns are only dereferenced when it is present.
func assembleJoinedFine(
	id, borrowID, userID *uuid.UUID,
	amount decimal.NullDecimal,
	status *string,
	paidDate, createdAt, updatedAt *time.Time,
) *circulation.Fine {
	if id == nil {
		return nil
	}

	f := &circulation.Fine{
		ID:       *id,
		Amount:   amount.Decimal,
		PaidDate: paidDate,
	}
	if borrowID != nil {
		f.BorrowID = *borrowID
	}
	if userID != nil {
		f.UserID = *userID
	}
	if status != nil {
		f.Status = circulation.FineStatus(*status)
	}
	if createdAt != nil {
		f.CreatedAt = *createdAt
	}
	if updatedAt != nil {
		f.UpdatedAt = *updatedAt
	}
	return f
}

// CompleteReturn is idempotence-by-predicate: the borrow update carries
// status IN ('active', 'overdue'), so a second return attempt matches
// zero rows and the whole transaction reports ErrAlreadyReturned.
func (r *postgresRepository) CompleteReturn(ctx context.Context, borrowID uuid.UUID, returnDate time.Time, fine *circulation.Fine) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		closeQuery := `
			UPDATE borrows
			SET return_date = $2, status = 'returned', updated_at = NOW()
			WHERE id = $1 AND status IN ('active', 'overdue')
			RETURNING copy_id
		`

		var copyID uuid.UUID
		err := tx.QueryRow(ctx, closeQuery, borrowID, returnDate).Scan(&copyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Missing vs already returned is resolved by the caller,
				// which loads the borrow first.
				return circulation.ErrAlreadyReturned
			}
			return fmt.Errorf("close borrow: %w", err)
		}

		// Damaged copies stay damaged; only issued copies go back on the
		// shelf.
		releaseQuery := `
			UPDATE book_copies
			SET status = 'available', updated_at = NOW()
			WHERE id = $1 AND status = 'issued'
		`
		if _, err := tx.Exec(ctx, releaseQuery, copyID); err != nil {
			return fmt.Errorf("release copy: %w", err)
		}

		if fine != nil {
			insertFine := `
				INSERT INTO fines (
					id, borrow_id, user_id, amount, status,
					created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7)
			`
			_, err := tx.Exec(ctx, insertFine,
				fine.ID,
				fine.BorrowID,
				fine.UserID,
				fine.Amount,
				fine.Status,
				fine.CreatedAt,
				fine.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert fine: %w", err)
			}
		}

		return nil
	})
}

// ========================================
// FINES
// ========================================

func (r *postgresRepository) FindFineByID(ctx context.Context, id uuid.UUID) (*circulation.Fine, error) {
	query := `
		SELECT
			id, borrow_id, user_id, amount, status,
			paid_date, created_at, updated_at
		FROM fines
		WHERE id = $1
	`

	var f circulation.Fine
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.BorrowID,
		&f.UserID,
		&f.Amount,
		&f.Status,
		&f.PaidDate,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, circulation.ErrFineNotFound
		}
		return nil, fmt.Errorf("find fine by id: %w", err)
	}

	return &f, nil
}

func (r *postgresRepository) ListFines(ctx context.Context, req circulation.ListFinesRequest) ([]circulation.FineDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			f.id, f.borrow_id, f.user_id, f.amount, f.status,
			f.paid_date, f.created_at, f.updated_at,
			b.title, u.full_name, u.email
		FROM fines f
		JOIN borrows br ON br.id = f.borrow_id
		JOIN books b ON b.id = br.book_id
		JOIN users u ON u.id = f.user_id
		WHERE 1 = 1
	`)

	args := []interface{}{}
	argPos := 1

	if req.UserID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND f.user_id = $%d", argPos))
		args = append(args, *req.UserID)
		argPos++
	}

	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND f.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fines: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY f.created_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fines: %w", err)
	}
	defer rows.Close()

	fines := make([]circulation.FineDetail, 0, req.Limit)
	for rows.Next() {
		var d circulation.FineDetail
		err := rows.Scan(
			&d.ID,
			&d.BorrowID,
			&d.UserID,
			&d.Amount,
			&d.Status,
			&d.PaidDate,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.BookTitle,
			&d.UserFullName,
			&d.UserEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan fine: %w", err)
		}
		fines = append(fines, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return fines, total, nil
}

// MarkFinePaid transitions unpaid -> paid exactly once; the status
// predicate makes replays report ErrFineAlreadyPaid instead of silently
// double-paying.
func (r *postgresRepository) MarkFinePaid(ctx context.Context, fineID uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE fines
		SET status = 'paid', paid_date = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'unpaid'
	`

	result, err := r.pool.Exec(ctx, query, fineID, paidAt)
	if err != nil {
		return fmt.Errorf("mark fine paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM fines WHERE id = $1)`
		_ = r.pool.QueryRow(ctx, checkQuery, fineID).Scan(&exists)

		if !exists {
			return circulation.ErrFineNotFound
		}
		return circulation.ErrFineAlreadyPaid
	}

	return nil
}

// ========================================
// OVERDUE SWEEP
// ========================================

// MarkOverdueBorrows flags a batch of overdue loans and returns them
// with the book title joined in for notification text. SKIP LOCKED
// keeps concurrent sweep runs from double-flagging.
func (r *postgresRepository) MarkOverdueBorrows(ctx context.Context, asOf time.Time, batchSize int) ([]circulation.OverdueBorrow, error) {
	query := `
		WITH flagged AS (
			UPDATE borrows
			SET status = 'overdue', updated_at = NOW()
			WHERE id IN (
				SELECT id FROM borrows
				WHERE status = 'active' AND due_date < $1
				ORDER BY due_date
				LIMIT $2
				FOR UPDATE SKIP LOCKED
			)
			RETURNING id, user_id, book_id, due_date
		)
		SELECT f.id, f.user_id, b.title, f.due_date
		FROM flagged f
		JOIN books b ON b.id = f.book_id
	`

	rows, err := r.pool.Query(ctx, query, asOf, batchSize)
	if err != nil {
		return nil, fmt.Errorf("mark overdue borrows: %w", err)
	}
	defer rows.Close()

	flagged := []circulation.OverdueBorrow{}
	for rows.Next() {
		var o circulation.OverdueBorrow
		if err := rows.Scan(&o.BorrowID, &o.UserID, &o.BookTitle, &o.DueDate); err != nil {
			return nil, fmt.Errorf("scan overdue borrow: %w", err)
		}
		flagged = append(flagged, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return flagged, nil
}

// ========================================
// ANALYTICS
// ========================================

func (r *postgresRepository) CountBorrowsByStatus(ctx context.Context, status circulation.BorrowStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM borrows WHERE status = $1
	`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count borrows by status: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) SumUnpaidFines(ctx context.Context) (string, error) {
	var sum string
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::text FROM fines WHERE status = 'unpaid'
	`).Scan(&sum)
	if err != nil {
		return "", fmt.Errorf("sum unpaid fines: %w", err)
	}
	return sum, nil
}
