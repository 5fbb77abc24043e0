package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ObjectStore abstracts the blob store used for cover images.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CoverProcessor validates and normalizes uploaded cover images before
// they reach the object store.
type CoverProcessor interface {
	Validate(data []byte) error
	Normalize(data []byte) ([]byte, error)
}

// Service is the business contract for the catalog.
type Service interface {
	CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*BookDetail, error)
	ListBooks(ctx context.Context, req ListBooksRequest) ([]BookWithAvailability, int, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*Book, error)
	UploadCover(ctx context.Context, id uuid.UUID, data []byte) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	AddCopy(ctx context.Context, bookID uuid.UUID, req AddCopyRequest) (*BookCopy, error)
	UpdateCopyStatus(ctx context.Context, copyID uuid.UUID, req UpdateCopyStatusRequest) (*BookCopy, error)
	DeleteCopy(ctx context.Context, copyID uuid.UUID) error
}
