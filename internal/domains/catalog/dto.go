package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ISBN, validation.Required, validation.Length(10, 17)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type ListBooksRequest struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

func (r *ListBooksRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type AddCopyRequest struct {
	Barcode string `json:"barcode"`
}

func (r AddCopyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Barcode, validation.Required, validation.Length(1, 64)),
	)
}

type UpdateCopyStatusRequest struct {
	Status CopyStatus `json:"status"`
}

func (r UpdateCopyStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		// Issued is reserved for the borrow flow, staff may only toggle
		// between available and damaged here.
		validation.Field(&r.Status, validation.Required, validation.In(CopyAvailable, CopyDamaged)),
	)
}
