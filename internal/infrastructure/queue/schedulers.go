package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/shared"
)

// RegisterSchedulers wires every recurring job into the asynq scheduler.
// Cron expressions are evaluated in the scheduler's location (UTC by default).
func RegisterSchedulers(scheduler *asynq.Scheduler, cfg *config.Config) error {
	// ============================================================
	// Overdue scan - daily at 01:00
	// Flags borrows past their due date and queues overdue notices.
	// ============================================================
	overduePayload, err := json.Marshal(shared.OverdueScanPayload{
		BatchSize: cfg.Jobs.OverdueScanBatchSize,
	})
	if err != nil {
		return err
	}

	overdueTask := asynq.NewTask(shared.TypeOverdueScan, overduePayload)
	if _, err := scheduler.Register(
		"0 1 * * *",
		overdueTask,
		asynq.Queue(shared.QueueCirculation),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
	); err != nil {
		log.Error().Err(err).Msg("[Scheduler] Failed to register overdue scan")
		return err
	}
	log.Info().Msg("✅ [Scheduler] Registered: overdue scan (daily 01:00)")

	// ============================================================
	// Reservation expiry - hourly
	// Expires active reservations older than the hold window.
	// ============================================================
	expireTask := asynq.NewTask(shared.TypeReservationExpire, nil)
	if _, err := scheduler.Register(
		"0 * * * *",
		expireTask,
		asynq.Queue(shared.QueueCirculation),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	); err != nil {
		log.Error().Err(err).Msg("[Scheduler] Failed to register reservation expiry")
		return err
	}
	log.Info().Msg("✅ [Scheduler] Registered: reservation expiry (hourly)")

	// ============================================================
	// Notification cleanup - daily at 03:00
	// Removes read notifications past the retention window.
	// ============================================================
	cleanupPayload, err := json.Marshal(shared.NotificationCleanupPayload{
		OlderThanDays: cfg.Jobs.NotificationRetentionDays,
	})
	if err != nil {
		return err
	}

	cleanupTask := asynq.NewTask(shared.TypeNotificationCleanup, cleanupPayload)
	if _, err := scheduler.Register(
		"0 3 * * *",
		cleanupTask,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	); err != nil {
		log.Error().Err(err).Msg("[Scheduler] Failed to register notification cleanup")
		return err
	}
	log.Info().Msg("✅ [Scheduler] Registered: notification cleanup (daily 03:00)")

	return nil
}
