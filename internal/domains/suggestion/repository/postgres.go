package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	suggestion "library-backend/internal/domains/suggestion"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed suggestion repository.
func NewPostgresRepository(pool *pgxpool.Pool) suggestion.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *suggestion.Suggestion) error {
	query := `
		INSERT INTO suggestions (
			id, suggester_id, title, author, reason, priority,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.SuggesterID,
		s.Title,
		s.Author,
		s.Reason,
		s.Priority,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*suggestion.Suggestion, error) {
	query := `
		SELECT
			id, suggester_id, title, author, reason, priority,
			status, rejection_reason, created_at, updated_at, deleted_at
		FROM suggestions
		WHERE id = $1 AND deleted_at IS NULL
	`

	var s suggestion.Suggestion
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.SuggesterID,
		&s.Title,
		&s.Author,
		&s.Reason,
		&s.Priority,
		&s.Status,
		&s.RejectionReason,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, suggestion.ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("find suggestion by id: %w", err)
	}

	return &s, nil
}

func (r *postgresRepository) List(ctx context.Context, req suggestion.ListSuggestionsRequest) ([]suggestion.SuggestionDetail, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			s.id, s.suggester_id, s.title, s.author, s.reason, s.priority,
			s.status, s.rejection_reason, s.created_at, s.updated_at,
			u.full_name
		FROM suggestions s
		JOIN users u ON u.id = s.suggester_id
		WHERE s.deleted_at IS NULL
	`)

	args := []interface{}{}
	argPos := 1

	if req.SuggesterID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.suggester_id = $%d", argPos))
		args = append(args, *req.SuggesterID)
		argPos++
	}

	if req.Status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	if req.Priority != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.priority = $%d", argPos))
		args = append(args, *req.Priority)
		argPos++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suggestions: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY s.created_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := make([]suggestion.SuggestionDetail, 0, req.Limit)
	for rows.Next() {
		var d suggestion.SuggestionDetail
		err := rows.Scan(
			&d.ID,
			&d.SuggesterID,
			&d.Title,
			&d.Author,
			&d.Reason,
			&d.Priority,
			&d.Status,
			&d.RejectionReason,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.SuggesterName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return suggestions, total, nil
}

// Decide only touches pending suggestions so the review is one-shot.
func (r *postgresRepository) Decide(ctx context.Context, id uuid.UUID, status suggestion.Status, rejectionReason *string) error {
	query := `
		UPDATE suggestions
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, status, rejectionReason)
	if err != nil {
		return fmt.Errorf("decide suggestion: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM suggestions WHERE id = $1 AND deleted_at IS NULL)`
		_ = r.pool.QueryRow(ctx, checkQuery, id).Scan(&exists)

		if !exists {
			return suggestion.ErrSuggestionNotFound
		}
		return suggestion.ErrNotPending
	}

	return nil
}
