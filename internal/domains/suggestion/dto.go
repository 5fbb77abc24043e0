package suggestion

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateSuggestionRequest struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Reason   string   `json:"reason"`
	Priority Priority `json:"priority"`
}

func (r CreateSuggestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Reason, validation.Length(0, 2000)),
		validation.Field(&r.Priority, validation.Required, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
	)
}

type RejectSuggestionRequest struct {
	Reason string `json:"reason"`
}

func (r RejectSuggestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Required, validation.Length(1, 2000)),
	)
}

type ListSuggestionsRequest struct {
	SuggesterID *uuid.UUID `form:"-"`
	Status      *Status    `form:"status"`
	Priority    *Priority  `form:"priority"`
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

func (r *ListSuggestionsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}
