package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/container"
)

// asynqScheduler wraps asynq.Scheduler with graceful shutdown.
type asynqScheduler struct {
	*asynq.Scheduler
}

// setupScheduler registers the recurring jobs and starts the scheduler
// in the background.
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		&asynq.SchedulerOpts{},
	)

	if err := queue.RegisterSchedulers(scheduler, c.Config); err != nil {
		log.Fatal().Err(err).Msg("❌ [Scheduler] Failed to register jobs")
	}

	go func() {
		log.Info().Msg("🚀 [Scheduler] Starting...")
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("❌ [Scheduler] Failed to run")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown stops the scheduler.
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("🛑 [Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("✅ [Scheduler] Stopped")
}
