package reporting

import (
	"context"

	"github.com/google/uuid"
)

// Service aggregates read-only statistics across the other domains.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	UserSummary(ctx context.Context, userID uuid.UUID) (*UserSummary, error)
}
