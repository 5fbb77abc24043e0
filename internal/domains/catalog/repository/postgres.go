package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	catalog "library-backend/internal/domains/catalog"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) catalog.Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// BOOKS
// ========================================

func (r *postgresRepository) CreateBook(ctx context.Context, b *catalog.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, isbn, category, description,
			cover_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.ISBN,
		b.Category,
		b.Description,
		b.CoverURL,
		b.CreatedAt,
		b.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return catalog.ErrISBNAlreadyExists
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindBookByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	query := `
		SELECT
			id, title, author, isbn, category, description,
			cover_url, created_at, updated_at, deleted_at
		FROM books
		WHERE id = $1 AND deleted_at IS NULL
	`

	var b catalog.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Category,
		&b.Description,
		&b.CoverURL,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}

	return &b, nil
}

// ListBooks joins copy counts per book. Soft-deleted books and copies
// never appear in the counts.
func (r *postgresRepository) ListBooks(ctx context.Context, req catalog.ListBooksRequest) ([]catalog.BookWithAvailability, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			b.id, b.title, b.author, b.isbn, b.category, b.description,
			b.cover_url, b.created_at, b.updated_at,
			COUNT(c.id) FILTER (WHERE c.deleted_at IS NULL) AS total_copies,
			COUNT(c.id) FILTER (WHERE c.deleted_at IS NULL AND c.status = 'available') AS available_copies
		FROM books b
		LEFT JOIN book_copies c ON c.book_id = b.id
		WHERE b.deleted_at IS NULL
	`)

	args := []interface{}{}
	argPos := 1

	if req.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.author ILIKE $%d OR b.isbn = $%d)", argPos, argPos, argPos+1))
		args = append(args, "%"+req.Search+"%", req.Search)
		argPos += 2
	}

	if req.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.category = $%d", argPos))
		args = append(args, req.Category)
		argPos++
	}

	queryBuilder.WriteString(" GROUP BY b.id")

	if req.AvailableOnly {
		queryBuilder.WriteString(" HAVING COUNT(c.id) FILTER (WHERE c.deleted_at IS NULL AND c.status = 'available') > 0")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", queryBuilder.String())
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	queryBuilder.WriteString(" ORDER BY b.title ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]catalog.BookWithAvailability, 0, req.Limit)
	for rows.Next() {
		var b catalog.BookWithAvailability
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.ISBN,
			&b.Category,
			&b.Description,
			&b.CoverURL,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.TotalCopies,
			&b.AvailableCopies,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) UpdateBook(ctx context.Context, b *catalog.Book) error {
	query := `
		UPDATE books
		SET
			title = $2,
			author = $3,
			category = $4,
			description = $5,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.Category,
		b.Description,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateBookCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	query := `
		UPDATE books
		SET cover_url = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, coverURL)
	if err != nil {
		return fmt.Errorf("update book cover: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrBookNotFound
	}

	return nil
}

// DeleteBook tombstones the book and its non-issued copies in one
// statement pair. Issued copies stay live so open borrows keep a valid
// reference until returned.
func (r *postgresRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete book: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE books
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return catalog.ErrBookNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE book_copies
		SET deleted_at = NOW()
		WHERE book_id = $1 AND deleted_at IS NULL AND status != 'issued'
	`, id)
	if err != nil {
		return fmt.Errorf("delete book copies: %w", err)
	}

	return tx.Commit(ctx)
}

// ========================================
// COPIES
// ========================================

func (r *postgresRepository) CreateCopy(ctx context.Context, c *catalog.BookCopy) error {
	query := `
		INSERT INTO book_copies (
			id, book_id, barcode, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.BookID,
		c.Barcode,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return catalog.ErrBarcodeExists
			case "23503":
				return catalog.ErrBookNotFound
			}
		}
		return fmt.Errorf("create copy: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindCopyByID(ctx context.Context, id uuid.UUID) (*catalog.BookCopy, error) {
	query := `
		SELECT id, book_id, barcode, status, created_at, updated_at, deleted_at
		FROM book_copies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var c catalog.BookCopy
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.BookID,
		&c.Barcode,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCopyNotFound
		}
		return nil, fmt.Errorf("find copy by id: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) ListCopiesByBook(ctx context.Context, bookID uuid.UUID) ([]catalog.BookCopy, error) {
	query := `
		SELECT id, book_id, barcode, status, created_at, updated_at, deleted_at
		FROM book_copies
		WHERE book_id = $1 AND deleted_at IS NULL
		ORDER BY barcode ASC
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list copies: %w", err)
	}
	defer rows.Close()

	copies := []catalog.BookCopy{}
	for rows.Next() {
		var c catalog.BookCopy
		err := rows.Scan(
			&c.ID,
			&c.BookID,
			&c.Barcode,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan copy: %w", err)
		}
		copies = append(copies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return copies, nil
}

// UpdateCopyStatus only touches copies not currently issued; the
// circulation flow owns the issued transitions.
func (r *postgresRepository) UpdateCopyStatus(ctx context.Context, id uuid.UUID, status catalog.CopyStatus) error {
	query := `
		UPDATE book_copies
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND status != 'issued'
	`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update copy status: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish missing copy from issued copy.
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM book_copies WHERE id = $1 AND deleted_at IS NULL)`
		_ = r.pool.QueryRow(ctx, checkQuery, id).Scan(&exists)

		if !exists {
			return catalog.ErrCopyNotFound
		}
		return catalog.ErrCopyNotDeletable
	}

	return nil
}

// DeleteCopy refuses to remove an issued copy.
func (r *postgresRepository) DeleteCopy(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE book_copies
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL AND status != 'issued'
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete copy: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM book_copies WHERE id = $1 AND deleted_at IS NULL)`
		_ = r.pool.QueryRow(ctx, checkQuery, id).Scan(&exists)

		if !exists {
			return catalog.ErrCopyNotFound
		}
		return catalog.ErrCopyNotDeletable
	}

	return nil
}

// ========================================
// ANALYTICS
// ========================================

func (r *postgresRepository) CountBooks(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountCopiesByStatus(ctx context.Context, status catalog.CopyStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM book_copies
		WHERE status = $1 AND deleted_at IS NULL
	`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count copies by status: %w", err)
	}
	return count, nil
}
