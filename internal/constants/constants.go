package constants

import "time"

// Session and context keys
const (
	SessionCookieName       = "task_session"
	ContextKeyUserID        = "user_id"
	ContextKeyCurrentWorker = "current_worker"
	ContextKeyTask          = "task"
)

// Auth
const (
	MinPasswordLength = 8
	LoginURL          = "/accounts/login/"
)

// Page sizes per list view
const (
	ProjectPageSize = 8
	WorkerPageSize  = 8
	TaskPageSize    = 4
	CatalogPageSize = 20
)

// MinDeadlineLead is how far in the future a task deadline must be when saved.
const MinDeadlineLead = 30 * time.Minute
