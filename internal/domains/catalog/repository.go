package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for the catalog.
type Repository interface {
	CreateBook(ctx context.Context, b *Book) error
	FindBookByID(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, req ListBooksRequest) ([]BookWithAvailability, int, error)
	UpdateBook(ctx context.Context, b *Book) error
	UpdateBookCover(ctx context.Context, id uuid.UUID, coverURL string) error
	DeleteBook(ctx context.Context, id uuid.UUID) error

	CreateCopy(ctx context.Context, c *BookCopy) error
	FindCopyByID(ctx context.Context, id uuid.UUID) (*BookCopy, error)
	ListCopiesByBook(ctx context.Context, bookID uuid.UUID) ([]BookCopy, error)
	UpdateCopyStatus(ctx context.Context, id uuid.UUID, status CopyStatus) error
	DeleteCopy(ctx context.Context, id uuid.UUID) error

	CountBooks(ctx context.Context) (int, error)
	CountCopiesByStatus(ctx context.Context, status CopyStatus) (int, error)
}
