package circulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinePolicy holds the pricing knobs for late returns.
type FinePolicy struct {
	PerDay decimal.Decimal
	Cap    decimal.Decimal
}

// NewFinePolicy builds a policy from whole-currency config values.
func NewFinePolicy(perDay, cap int) FinePolicy {
	return FinePolicy{
		PerDay: decimal.NewFromInt(int64(perDay)),
		Cap:    decimal.NewFromInt(int64(cap)),
	}
}

// CalculateFine returns the fine owed for a return at returnDate on a
// loan due at dueDate: perDay per whole day late, capped. Partial days
// are forgiven, so a return 23 hours late owes nothing extra beyond
// zero days. On-time and early returns owe zero.
func CalculateFine(dueDate, returnDate time.Time, policy FinePolicy) decimal.Decimal {
	if !returnDate.After(dueDate) {
		return decimal.Zero
	}

	daysLate := int64(returnDate.Sub(dueDate).Hours() / 24)
	if daysLate <= 0 {
		return decimal.Zero
	}

	fine := policy.PerDay.Mul(decimal.NewFromInt(daysLate))
	if fine.GreaterThan(policy.Cap) {
		return policy.Cap
	}
	return fine
}
