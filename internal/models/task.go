package models

import "time"

// Task statuses. Tasks are created pending; later transitions belong to the
// assignment workflow, not to generation.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusSkipped    = "skipped"
)

// Priority levels assigned to a task from its due date's distance to now.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone, TaskStatusSkipped:
		return true
	}
	return false
}

// Task is one materialized inspection obligation. AssetID nil means the task
// applies to every asset in the originating schedule's pool. At most one task
// exists per (schedule_id, due_date); the tasks table enforces this with a
// unique index.
type Task struct {
	ID         int       `json:"id"`
	OrgID      int       `json:"org_id"`
	SiteID     int       `json:"site_id"`
	AssetID    *int      `json:"asset_id"`
	ScheduleID int       `json:"schedule_id"`
	TemplateID *int      `json:"template_id"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	AssigneeID *int      `json:"assignee_id"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}
