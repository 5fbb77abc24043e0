package shared

// Asynq task types. Kept here so domain jobs and the scheduler agree
// without import cycles.
const (
	TypeOverdueScan         = "circulation:overdue_scan"
	TypeReservationExpire   = "reservation:expire"
	TypeNotificationCleanup = "notification:cleanup_old"
)

// Queue names registered by the worker. Priorities are configured in
// cmd/worker: circulation > notification > maintenance.
const (
	QueueCirculation  = "high"
	QueueNotification = "default"
	QueueMaintenance  = "low"
)

// OverdueScanPayload is the payload for the overdue sweep job.
type OverdueScanPayload struct {
	BatchSize int `json:"batch_size"`
}

// ReservationExpirePayload is the payload for the reservation expiry job.
type ReservationExpirePayload struct{}

// NotificationCleanupPayload is the payload for the notification cleanup job.
type NotificationCleanupPayload struct {
	OlderThanDays int `json:"older_than_days"`
}
