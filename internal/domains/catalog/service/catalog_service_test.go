package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/catalog"
)

// ========================================
// MOCKS
// ========================================

type mockCatalogRepo struct {
	findBookFn    func(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	updateCoverFn func(ctx context.Context, id uuid.UUID, coverURL string) error
}

func (m *mockCatalogRepo) CreateBook(ctx context.Context, b *catalog.Book) error { return nil }

func (m *mockCatalogRepo) FindBookByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	return m.findBookFn(ctx, id)
}

func (m *mockCatalogRepo) ListBooks(ctx context.Context, req catalog.ListBooksRequest) ([]catalog.BookWithAvailability, int, error) {
	return nil, 0, nil
}

func (m *mockCatalogRepo) UpdateBook(ctx context.Context, b *catalog.Book) error { return nil }

func (m *mockCatalogRepo) UpdateBookCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	return m.updateCoverFn(ctx, id, coverURL)
}

func (m *mockCatalogRepo) DeleteBook(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockCatalogRepo) CreateCopy(ctx context.Context, c *catalog.BookCopy) error { return nil }

func (m *mockCatalogRepo) FindCopyByID(ctx context.Context, id uuid.UUID) (*catalog.BookCopy, error) {
	return nil, catalog.ErrCopyNotFound
}

func (m *mockCatalogRepo) ListCopiesByBook(ctx context.Context, bookID uuid.UUID) ([]catalog.BookCopy, error) {
	return nil, nil
}

func (m *mockCatalogRepo) UpdateCopyStatus(ctx context.Context, id uuid.UUID, status catalog.CopyStatus) error {
	return nil
}

func (m *mockCatalogRepo) DeleteCopy(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockCatalogRepo) CountBooks(ctx context.Context) (int, error) { return 0, nil }

func (m *mockCatalogRepo) CountCopiesByStatus(ctx context.Context, status catalog.CopyStatus) (int, error) {
	return 0, nil
}

type mockCache struct{}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (m *mockCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (m *mockCache) Ping(ctx context.Context) error                          { return nil }

type mockObjectStore struct {
	uploadedKey         string
	uploadedContentType string
	uploadedData        []byte
	uploadCalled        bool
}

func (m *mockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.uploadCalled = true
	m.uploadedKey = key
	m.uploadedData = data
	m.uploadedContentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error { return nil }

type mockCoverProcessor struct {
	validateErr  error
	normalized   []byte
	normalizeErr error
}

func (m *mockCoverProcessor) Validate(data []byte) error { return m.validateErr }

func (m *mockCoverProcessor) Normalize(data []byte) ([]byte, error) {
	return m.normalized, m.normalizeErr
}

// ========================================
// TESTS
// ========================================

func TestUploadCover(t *testing.T) {
	bookID := uuid.New()

	newRepo := func() *mockCatalogRepo {
		return &mockCatalogRepo{
			findBookFn: func(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
				return &catalog.Book{ID: id, Title: "The Go Programming Language"}, nil
			},
			updateCoverFn: func(ctx context.Context, id uuid.UUID, coverURL string) error {
				return nil
			},
		}
	}

	t.Run("stores the normalized jpeg under a stable key", func(t *testing.T) {
		store := &mockObjectStore{}
		covers := &mockCoverProcessor{normalized: []byte("jpeg-bytes")}
		svc := NewCatalogService(newRepo(), &mockCache{}, store, covers)

		book, err := svc.UploadCover(context.Background(), bookID, []byte("png-bytes"))

		require.NoError(t, err)
		assert.True(t, store.uploadCalled)
		assert.Equal(t, "covers/"+bookID.String()+".jpg", store.uploadedKey)
		assert.Equal(t, "image/jpeg", store.uploadedContentType)
		assert.Equal(t, []byte("jpeg-bytes"), store.uploadedData)
		require.NotNil(t, book.CoverURL)
		assert.Equal(t, "https://cdn.example.com/covers/"+bookID.String()+".jpg", *book.CoverURL)
	})

	t.Run("rejects an invalid image before touching storage", func(t *testing.T) {
		store := &mockObjectStore{}
		covers := &mockCoverProcessor{validateErr: errors.New("unsupported cover format \"gif\"")}
		svc := NewCatalogService(newRepo(), &mockCache{}, store, covers)

		_, err := svc.UploadCover(context.Background(), bookID, []byte("gif-bytes"))

		assert.ErrorIs(t, err, catalog.ErrInvalidCoverImage)
		assert.False(t, store.uploadCalled)
	})

	t.Run("rejects bytes that fail normalization", func(t *testing.T) {
		store := &mockObjectStore{}
		covers := &mockCoverProcessor{normalizeErr: errors.New("decode cover: unexpected EOF")}
		svc := NewCatalogService(newRepo(), &mockCache{}, store, covers)

		_, err := svc.UploadCover(context.Background(), bookID, []byte("truncated"))

		assert.ErrorIs(t, err, catalog.ErrInvalidCoverImage)
		assert.False(t, store.uploadCalled)
	})

	t.Run("unknown book short-circuits", func(t *testing.T) {
		repo := newRepo()
		repo.findBookFn = func(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
			return nil, catalog.ErrBookNotFound
		}
		store := &mockObjectStore{}
		svc := NewCatalogService(repo, &mockCache{}, store, &mockCoverProcessor{})

		_, err := svc.UploadCover(context.Background(), bookID, []byte("png-bytes"))

		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
		assert.False(t, store.uploadCalled)
	})
}
