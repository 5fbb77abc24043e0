package circulation

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BorrowRequest creates a loan. DueDate is optional; omitted, the loan
// runs for the configured period. A supplied due date must be strictly
// in the future.
type BorrowRequest struct {
	BookID  string     `json:"book_id"`
	DueDate *time.Time `json:"due_date"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, is.UUIDv4),
	)
}

func (r BorrowRequest) BookUUID() (uuid.UUID, error) {
	return uuid.Parse(r.BookID)
}

// ReturnRequest lets staff override the computed fine. A nil override
// keeps the calculated amount; zero waives the fine entirely.
type ReturnRequest struct {
	FineOverride *decimal.Decimal `json:"fine_override"`
}

func (r ReturnRequest) Validate() error {
	if r.FineOverride != nil && r.FineOverride.IsNegative() {
		return ErrNegativeOverride
	}
	return nil
}

type ListBorrowsRequest struct {
	UserID *uuid.UUID    `form:"-"`
	Status *BorrowStatus `form:"status"`
	Page   int           `form:"page"`
	Limit  int           `form:"limit"`
}

func (r *ListBorrowsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type ListFinesRequest struct {
	UserID *uuid.UUID  `form:"-"`
	Status *FineStatus `form:"status"`
	Page   int         `form:"page"`
	Limit  int         `form:"limit"`
}

func (r *ListFinesRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

// ReturnResponse carries the completed loan and whatever fine it
// produced, if any.
type ReturnResponse struct {
	Borrow *Borrow `json:"borrow"`
	Fine   *Fine   `json:"fine,omitempty"`
}
