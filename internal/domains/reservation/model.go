package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Status is the reservation lifecycle. A reservation is fulfilled when
// its holder borrows the book, or expired by the hourly sweep once the
// hold window passes.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusFulfilled Status = "fulfilled"
)

// Reservation is a hold placed by a user on a book title.
type Reservation struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	BookID          uuid.UUID  `json:"book_id"`
	ReservationDate time.Time  `json:"reservation_date"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// ReservationDetail is the listing shape with book context joined in.
type ReservationDetail struct {
	Reservation
	BookTitle    string `json:"book_title"`
	BookAuthor   string `json:"book_author"`
	UserFullName string `json:"user_full_name"`
}
