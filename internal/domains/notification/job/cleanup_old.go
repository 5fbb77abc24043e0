package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/notification"
	"library-backend/internal/shared"
	"library-backend/internal/shared/utils"
)

// CleanupHandler purges read notifications past the retention window.
type CleanupHandler struct {
	service notification.Service
}

func NewCleanupHandler(service notification.Service) *CleanupHandler {
	return &CleanupHandler{service: service}
}

func (h *CleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.NotificationCleanupPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	deleted, err := h.service.CleanupOld(ctx, payload.OlderThanDays)
	if err != nil {
		log.Error().Err(err).Msg("[Worker] Notification cleanup failed")
		return err
	}

	log.Info().Int("deleted", deleted).Msg("[Worker] Notification cleanup completed")
	return nil
}
