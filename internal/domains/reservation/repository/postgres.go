package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	reservation "library-backend/internal/domains/reservation"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed reservation repository.
func NewPostgresRepository(pool *pgxpool.Pool) reservation.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, user_id, book_id, reservation_date, expiry_date,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		res.ID,
		res.UserID,
		res.BookID,
		res.ReservationDate,
		res.ExpiryDate,
		res.Status,
		res.CreatedAt,
		res.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Partial unique index on (user_id, book_id) WHERE status = 'active'.
			return reservation.ErrDuplicateActive
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `
		SELECT
			id, user_id, book_id, reservation_date, expiry_date,
			status, created_at, updated_at, deleted_at
		FROM reservations
		WHERE id = $1 AND deleted_at IS NULL
	`

	var res reservation.Reservation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.UserID,
		&res.BookID,
		&res.ReservationDate,
		&res.ExpiryDate,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
		&res.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation by id: %w", err)
	}

	return &res, nil
}

func (r *postgresRepository) List(ctx context.Context, req reservation.ListReservationsRequest) ([]reservation.ReservationDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			res.id, res.user_id, res.book_id, res.reservation_date,
			res.expiry_date, res.status, res.created_at, res.updated_at,
			b.title, b.author, u.full_name
		FROM reservations res
		JOIN books b ON b.id = res.book_id
		JOIN users u ON u.id = res.user_id
		WHERE res.deleted_at IS NULL
	`)

	args := []interface{}{}
	argPos := 1

	if req.UserID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND res.user_id = $%d", argPos))
		args = append(args, *req.UserID)
		argPos++
	}

	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND res.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY res.reservation_date DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]reservation.ReservationDetail, 0, req.Limit)
	for rows.Next() {
		var d reservation.ReservationDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.BookID,
			&d.ReservationDate,
			&d.ExpiryDate,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.BookTitle,
			&d.BookAuthor,
			&d.UserFullName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return reservations, total, nil
}

func (r *postgresRepository) HasActiveForBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND book_id = $2
			  AND status = 'active' AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has active reservation: %w", err)
	}

	return exists, nil
}

// Cancel only removes reservations still active; fulfilled and expired
// ones are history.
func (r *postgresRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reservations
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = $1 AND deleted_at IS NULL)`
		_ = r.pool.QueryRow(ctx, checkQuery, id).Scan(&exists)

		if !exists {
			return reservation.ErrReservationNotFound
		}
		return reservation.ErrNotActive
	}

	return nil
}

func (r *postgresRepository) Fulfill(ctx context.Context, userID, bookID uuid.UUID) (int, error) {
	query := `
		UPDATE reservations
		SET status = 'fulfilled', updated_at = NOW()
		WHERE user_id = $1 AND book_id = $2
		  AND status = 'active' AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return 0, fmt.Errorf("fulfill reservation: %w", err)
	}

	return int(result.RowsAffected()), nil
}

func (r *postgresRepository) ExpireOlderThan(ctx context.Context, asOf time.Time) (int, error) {
	query := `
		UPDATE reservations
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND expiry_date < $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, asOf)
	if err != nil {
		return 0, fmt.Errorf("expire reservations: %w", err)
	}

	return int(result.RowsAffected()), nil
}

func (r *postgresRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE user_id = $1 AND status = 'active' AND deleted_at IS NULL
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active reservations by user: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountByStatus(ctx context.Context, status reservation.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE status = $1 AND deleted_at IS NULL
	`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reservations by status: %w", err)
	}
	return count, nil
}
