package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BorrowStatus tracks the loan lifecycle. Overdue is set by the nightly
// sweep; an overdue loan is still open and still counts against the
// borrow limit.
type BorrowStatus string

const (
	BorrowActive   BorrowStatus = "active"
	BorrowOverdue  BorrowStatus = "overdue"
	BorrowReturned BorrowStatus = "returned"
)

// FineStatus is a one-way switch: unpaid fines become paid exactly once.
type FineStatus string

const (
	FineUnpaid FineStatus = "unpaid"
	FinePaid   FineStatus = "paid"
)

// Borrow is one loan of one physical copy to one user.
type Borrow struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	BookID     uuid.UUID    `json:"book_id"`
	CopyID     uuid.UUID    `json:"copy_id"`
	BorrowDate time.Time    `json:"borrow_date"`
	DueDate    time.Time    `json:"due_date"`
	ReturnDate *time.Time   `json:"return_date,omitempty"`
	Status     BorrowStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Fine is the monetary penalty attached to a late return.
type Fine struct {
	ID        uuid.UUID       `json:"id"`
	BorrowID  uuid.UUID       `json:"borrow_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    FineStatus      `json:"status"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BorrowDetail is the listing shape with book and borrower context
// joined in.
type BorrowDetail struct {
	Borrow
	BookTitle    string `json:"book_title"`
	BookAuthor   string `json:"book_author"`
	CopyBarcode  string `json:"copy_barcode"`
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
	Fine         *Fine  `json:"fine,omitempty"`
}

// FineDetail is the fine listing shape with loan context joined in.
type FineDetail struct {
	Fine
	BookTitle    string `json:"book_title"`
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
}

// OverdueBorrow is the sweep's working set: enough to flag the loan and
// notify the borrower.
type OverdueBorrow struct {
	BorrowID  uuid.UUID
	UserID    uuid.UUID
	BookTitle string
	DueDate   time.Time
}
