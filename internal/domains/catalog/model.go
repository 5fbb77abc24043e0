package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CopyStatus is the physical state of a single copy.
type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyIssued    CopyStatus = "issued"
	CopyReserved  CopyStatus = "reserved"
	CopyDamaged   CopyStatus = "damaged"
)

func (s CopyStatus) Valid() bool {
	switch s {
	case CopyAvailable, CopyIssued, CopyReserved, CopyDamaged:
		return true
	}
	return false
}

// Book is the bibliographic record. Physical stock lives in BookCopy.
type Book struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// BookCopy is one physical copy identified by barcode.
type BookCopy struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"book_id"`
	Barcode   string     `json:"barcode"`
	Status    CopyStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// BookWithAvailability is the listing shape: the book plus copy counts.
type BookWithAvailability struct {
	Book
	TotalCopies     int `json:"total_copies"`
	AvailableCopies int `json:"available_copies"`
}

// BookDetail is the single-book shape with its copies expanded.
type BookDetail struct {
	Book
	Copies []BookCopy `json:"copies"`
}
