package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/circulation"
	"library-backend/internal/shared"
	"library-backend/internal/shared/utils"
)

// OverdueScanHandler runs the scheduled overdue sweep.
type OverdueScanHandler struct {
	service circulation.Service
}

func NewOverdueScanHandler(service circulation.Service) *OverdueScanHandler {
	return &OverdueScanHandler{service: service}
}

// ProcessTask flags open loans past their due date and fans out
// notifications. Batched so a huge backlog cannot hold one task open
// for the whole queue timeout.
func (h *OverdueScanHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.OverdueScanPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	batchSize := payload.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for {
		flagged, err := h.service.SweepOverdue(ctx, batchSize)
		if err != nil {
			log.Error().Err(err).Msg("[Worker] Overdue sweep failed")
			return err
		}
		total += flagged

		if flagged < batchSize {
			break
		}
	}

	log.Info().Int("flagged", total).Msg("[Worker] Overdue sweep completed")
	return nil
}
