package catalog

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCopyNotFound      = errors.New("book copy not found")
	ErrISBNAlreadyExists = errors.New("isbn already registered")
	ErrBarcodeExists     = errors.New("barcode already registered")
	ErrCopyNotDeletable  = errors.New("copy is issued and cannot be removed")
	ErrInvalidCopyStatus = errors.New("invalid copy status")
	ErrInvalidCoverImage = errors.New("cover must be a jpeg or png image")
)

// Error codes surfaced in the response envelope.
const (
	CodeBookNotFound  = "CAT001"
	CodeCopyNotFound  = "CAT002"
	CodeISBNExists    = "CAT003"
	CodeBarcodeExists = "CAT004"
	CodeCopyIssued    = "CAT005"
	CodeInvalidCover  = "CAT006"
)
