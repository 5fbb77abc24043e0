package circulation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateFine(t *testing.T) {
	policy := NewFinePolicy(5, 50)
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		returnDate time.Time
		want       string
	}{
		{"early return", due.Add(-48 * time.Hour), "0"},
		{"on the due date", due, "0"},
		{"partial day forgiven", due.Add(23 * time.Hour), "0"},
		{"one day late", due.Add(24 * time.Hour), "5"},
		{"one and a half days late", due.Add(36 * time.Hour), "5"},
		{"three days late", due.Add(72 * time.Hour), "15"},
		{"nine days late", due.AddDate(0, 0, 9), "45"},
		{"ten days hits the cap", due.AddDate(0, 0, 10), "50"},
		{"twenty days stays capped", due.AddDate(0, 0, 20), "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateFine(due, tt.returnDate, policy)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestReturnRequestValidate(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero
	pos := decimal.NewFromInt(10)

	assert.NoError(t, ReturnRequest{}.Validate())
	assert.NoError(t, ReturnRequest{FineOverride: &zero}.Validate())
	assert.NoError(t, ReturnRequest{FineOverride: &pos}.Validate())
	assert.ErrorIs(t, ReturnRequest{FineOverride: &neg}.Validate(), ErrNegativeOverride)
}

func TestListBorrowsRequestSetDefaults(t *testing.T) {
	var req ListBorrowsRequest
	req.SetDefaults()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = ListBorrowsRequest{Page: 3, Limit: 500}
	req.SetDefaults()
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 20, req.Limit)
}
