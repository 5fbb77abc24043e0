package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/reservation"
)

// ExpireHandler runs the scheduled reservation expiry sweep.
type ExpireHandler struct {
	service reservation.Service
}

func NewExpireHandler(service reservation.Service) *ExpireHandler {
	return &ExpireHandler{service: service}
}

func (h *ExpireHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	expired, err := h.service.ExpireStale(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[Worker] Reservation expiry failed")
		return err
	}

	log.Info().Int("expired", expired).Msg("[Worker] Reservation expiry completed")
	return nil
}
