package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circulation "library-backend/internal/domains/circulation"
)

func TestAssembleJoinedFine(t *testing.T) {
	t.Run("loan without fine yields nil", func(t *testing.T) {
		// The common case: LEFT JOIN found no fines row, every column
		// scanned as NULL.
		fine := assembleJoinedFine(nil, nil, nil, decimal.NullDecimal{}, nil, nil, nil, nil)
		assert.Nil(t, fine)
	})

	t.Run("loan with fine is fully populated", func(t *testing.T) {
		id := uuid.New()
		borrowID := uuid.New()
		userID := uuid.New()
		amount := decimal.NullDecimal{Decimal: decimal.NewFromInt(15), Valid: true}
		status := "unpaid"
		createdAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
		updatedAt := createdAt.Add(time.Hour)

		fine := assembleJoinedFine(&id, &borrowID, &userID, amount, &status, nil, &createdAt, &updatedAt)

		require.NotNil(t, fine)
		assert.Equal(t, id, fine.ID)
		assert.Equal(t, borrowID, fine.BorrowID)
		assert.Equal(t, userID, fine.UserID)
		assert.True(t, fine.Amount.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, circulation.FineUnpaid, fine.Status)
		assert.Nil(t, fine.PaidDate)
		assert.Equal(t, createdAt, fine.CreatedAt)
		assert.Equal(t, updatedAt, fine.UpdatedAt)
	})

	t.Run("paid fine keeps its paid date", func(t *testing.T) {
		id := uuid.New()
		status := "paid"
		paidAt := time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)

		fine := assembleJoinedFine(&id, nil, nil, decimal.NullDecimal{}, &status, &paidAt, nil, nil)

		require.NotNil(t, fine)
		assert.Equal(t, circulation.FinePaid, fine.Status)
		require.NotNil(t, fine.PaidDate)
		assert.Equal(t, paidAt, *fine.PaidDate)
	})
}
