package main

import (
	"github.com/hibiken/asynq"

	circulationJob "library-backend/internal/domains/circulation/job"
	notificationJob "library-backend/internal/domains/notification/job"
	reservationJob "library-backend/internal/domains/reservation/job"
	"library-backend/internal/shared"
	"library-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	overdueScan         *circulationJob.OverdueScanHandler
	reservationExpire   *reservationJob.ExpireHandler
	notificationCleanup *notificationJob.CleanupHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		overdueScan:         circulationJob.NewOverdueScanHandler(c.CirculationService),
		reservationExpire:   reservationJob.NewExpireHandler(c.ReservationService),
		notificationCleanup: notificationJob.NewCleanupHandler(c.NotificationService),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeOverdueScan, h.overdueScan.ProcessTask)
	mux.HandleFunc(shared.TypeReservationExpire, h.reservationExpire.ProcessTask)
	mux.HandleFunc(shared.TypeNotificationCleanup, h.notificationCleanup.ProcessTask)
}
