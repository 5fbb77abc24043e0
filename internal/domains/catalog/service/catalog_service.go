package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog"
	"library-backend/pkg/cache"
)

const (
	bookListCacheTTL = 5 * time.Minute
	bookCachePattern = "books:*"
)

type catalogService struct {
	repo   catalog.Repository
	cache  cache.Cache
	store  catalog.ObjectStore
	covers catalog.CoverProcessor
}

// NewCatalogService wires the catalog service.
func NewCatalogService(repo catalog.Repository, cache cache.Cache, store catalog.ObjectStore, covers catalog.CoverProcessor) catalog.Service {
	return &catalogService{
		repo:   repo,
		cache:  cache,
		store:  store,
		covers: covers,
	}
}

// ========================================
// BOOKS
// ========================================

func (s *catalogService) CreateBook(ctx context.Context, req catalog.CreateBookRequest) (*catalog.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &catalog.Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return b, nil
}

func (s *catalogService) GetBook(ctx context.Context, id uuid.UUID) (*catalog.BookDetail, error) {
	b, err := s.repo.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	copies, err := s.repo.ListCopiesByBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &catalog.BookDetail{
		Book:   *b,
		Copies: copies,
	}, nil
}

// ListBooks caches each distinct listing query for a short TTL. Writes
// anywhere in the catalog invalidate the whole books:* keyspace.
func (s *catalogService) ListBooks(ctx context.Context, req catalog.ListBooksRequest) ([]catalog.BookWithAvailability, int, error) {
	req.SetDefaults()

	type cachedListing struct {
		Books []catalog.BookWithAvailability `json:"books"`
		Total int                            `json:"total"`
	}

	cacheKey := fmt.Sprintf("books:list:%s:%s:%t:%d:%d",
		req.Search, req.Category, req.AvailableOnly, req.Page, req.Limit)

	var cached cachedListing
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.Books, cached.Total, nil
	}

	books, total, err := s.repo.ListBooks(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	_ = s.cache.Set(ctx, cacheKey, cachedListing{Books: books, Total: total}, bookListCacheTTL)

	return books, total, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, id uuid.UUID, req catalog.UpdateBookRequest) (*catalog.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Description != nil {
		b.Description = *req.Description
	}

	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return b, nil
}

// UploadCover validates the image, normalizes it to a bounded JPEG,
// stores it under covers/<book-id>.jpg and records the resulting URL
// on the book.
func (s *catalogService) UploadCover(ctx context.Context, id uuid.UUID, data []byte) (*catalog.Book, error) {
	b, err := s.repo.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.covers.Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInvalidCoverImage, err)
	}

	normalized, err := s.covers.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInvalidCoverImage, err)
	}

	key := fmt.Sprintf("covers/%s.jpg", id.String())

	url, err := s.store.Upload(ctx, key, normalized, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	if err := s.repo.UpdateBookCover(ctx, id, url); err != nil {
		return nil, err
	}

	b.CoverURL = &url
	s.invalidateListings(ctx)
	return b, nil
}

func (s *catalogService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

// ========================================
// COPIES
// ========================================

func (s *catalogService) AddCopy(ctx context.Context, bookID uuid.UUID, req catalog.AddCopyRequest) (*catalog.BookCopy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Verify the book exists before inserting so the caller gets a clean
	// not-found instead of a foreign key violation.
	if _, err := s.repo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &catalog.BookCopy{
		ID:        uuid.New(),
		BookID:    bookID,
		Barcode:   req.Barcode,
		Status:    catalog.CopyAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCopy(ctx, c); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return c, nil
}

func (s *catalogService) UpdateCopyStatus(ctx context.Context, copyID uuid.UUID, req catalog.UpdateCopyStatusRequest) (*catalog.BookCopy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCopyStatus(ctx, copyID, req.Status); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return s.repo.FindCopyByID(ctx, copyID)
}

func (s *catalogService) DeleteCopy(ctx context.Context, copyID uuid.UUID) error {
	if err := s.repo.DeleteCopy(ctx, copyID); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *catalogService) invalidateListings(ctx context.Context) {
	// Cache invalidation is best effort.
	_ = s.cache.DeletePattern(ctx, bookCachePattern)
}
