package reservation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	BookID string `json:"book_id"`
}

func (r CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, is.UUIDv4),
	)
}

func (r CreateReservationRequest) BookUUID() (uuid.UUID, error) {
	return uuid.Parse(r.BookID)
}

type ListReservationsRequest struct {
	UserID *uuid.UUID `form:"-"`
	Status *Status    `form:"status"`
	Page   int        `form:"page"`
	Limit  int        `form:"limit"`
}

func (r *ListReservationsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
