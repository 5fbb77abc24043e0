package event

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        Type      `json:"type"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
}

func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Type, validation.Required, validation.In(TypeSeminar, TypeWorkshop, TypeOther)),
		validation.Field(&r.EventDate, validation.Required),
		validation.Field(&r.Location, validation.Required, validation.Length(1, 255)),
	)
}

type ListEventsRequest struct {
	OrganizerID *uuid.UUID `form:"-"`
	Status      *Status    `form:"status"`
	Upcoming    bool       `form:"upcoming"`
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

func (r *ListEventsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
