package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	event "library-backend/internal/domains/event"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed event repository.
func NewPostgresRepository(pool *pgxpool.Pool) event.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (
			id, organizer_id, title, description, type, event_date,
			location, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.OrganizerID,
		e.Title,
		e.Description,
		e.Type,
		e.EventDate,
		e.Location,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	query := `
		SELECT
			id, organizer_id, title, description, type, event_date,
			location, status, created_at, updated_at, deleted_at
		FROM events
		WHERE id = $1 AND deleted_at IS NULL
	`

	var e event.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.OrganizerID,
		&e.Title,
		&e.Description,
		&e.Type,
		&e.EventDate,
		&e.Location,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}

	return &e, nil
}

func (r *postgresRepository) List(ctx context.Context, req event.ListEventsRequest) ([]event.EventDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			e.id, e.organizer_id, e.title, e.description, e.type,
			e.event_date, e.location, e.status, e.created_at, e.updated_at,
			u.full_name
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.deleted_at IS NULL
	`)

	args := []interface{}{}
	argPos := 1

	if req.OrganizerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND e.organizer_id = $%d", argPos))
		args = append(args, *req.OrganizerID)
		argPos++
	}

	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND e.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	if req.Upcoming {
		queryBuilder.WriteString(" AND e.event_date >= NOW()")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY e.event_date ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]event.EventDetail, 0, req.Limit)
	for rows.Next() {
		var d event.EventDetail
		err := rows.Scan(
			&d.ID,
			&d.OrganizerID,
			&d.Title,
			&d.Description,
			&d.Type,
			&d.EventDate,
			&d.Location,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.OrganizerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return events, total, nil
}

// Decide only touches pending events so the approval is one-shot.
func (r *postgresRepository) Decide(ctx context.Context, id uuid.UUID, status event.Status) error {
	query := `
		UPDATE events
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("decide event: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1 AND deleted_at IS NULL)`
		_ = r.pool.QueryRow(ctx, checkQuery, id).Scan(&exists)

		if !exists {
			return event.ErrEventNotFound
		}
		return event.ErrNotPending
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE events
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}

	return nil
}
