package circulation

import "errors"

// Sentinel errors for the borrow/return/fine lifecycle. Each maps to a
// distinct response code so clients can tell policy refusals apart.
var (
	ErrBorrowNotFound   = errors.New("borrow record not found")
	ErrBorrowLimit      = errors.New("borrow limit reached")
	ErrUnpaidFines      = errors.New("account has unpaid fines")
	ErrNoCopyAvailable  = errors.New("no copy of this book is available")
	ErrAlreadyReturned  = errors.New("borrow has already been returned")
	ErrFineNotFound     = errors.New("fine not found")
	ErrFineAlreadyPaid  = errors.New("fine has already been paid")
	ErrNegativeOverride = errors.New("fine override must not be negative")
	ErrDueDateNotFuture = errors.New("due date must be in the future")
)

// Error codes surfaced in the response envelope.
const (
	CodeBorrowNotFound  = "CIR001"
	CodeBorrowLimit     = "CIR002"
	CodeUnpaidFines     = "CIR003"
	CodeNoCopyAvailable = "CIR004"
	CodeAlreadyReturned = "CIR005"
	CodeFineNotFound    = "CIR006"
	CodeFineAlreadyPaid = "CIR007"
)
