// Package taskgen turns recurring check schedules into concrete, due-dated
// task proposals. Everything here is a pure computation over caller-supplied
// state: now is an explicit parameter, existing tasks arrive as a snapshot,
// and persistence of proposals and the rotation cursor is the caller's job.
package taskgen

import (
	"fmt"
	"time"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// taskExists reports whether a task for (scheduleID, due) is already
// materialized, comparing due dates at calendar-day precision. This is the
// sole defense against duplicate creation when generation runs overlap; the
// store's unique index on (schedule_id, due_date) backstops stale snapshots.
func taskExists(existing []models.Task, scheduleID int, due time.Time) bool {
	day := startOfDay(due)
	for _, t := range existing {
		if t.ScheduleID == scheduleID && startOfDay(t.DueDate).Equal(day) {
			return true
		}
	}
	return false
}

// GenerateTasks materializes every occurrence of s that falls strictly before
// now+lookaheadDays and has no task yet. Proposals come back oldest first,
// status pending, unassigned, with no IDs or timestamps (the store assigns
// those). Running it again with the first run's output included in existing
// produces nothing new.
//
// An inactive schedule yields an empty batch. A missing start date or unknown
// frequency is a configuration error for this schedule and is reported rather
// than guessed around.
func GenerateTasks(s models.Schedule, existing []models.Task, now time.Time, lookaheadDays int, tpl *models.CheckTemplate) ([]models.Task, error) {
	if s.StartDate.IsZero() {
		return nil, fmt.Errorf("schedule %d: start date is not set", s.ID)
	}
	if !models.ValidFrequency(s.Frequency) {
		return nil, fmt.Errorf("schedule %d: unknown frequency %q", s.ID, s.Frequency)
	}

	horizon := startOfDay(now).AddDate(0, 0, lookaheadDays)
	var proposals []models.Task
	created := 0

	due, ok := NextDueDate(s, now)
	for ok && due.Before(horizon) {
		if !taskExists(existing, s.ID, due) {
			proposals = append(proposals, models.Task{
				OrgID:      s.OrgID,
				SiteID:     s.SiteID,
				AssetID:    ResolveTarget(s, tpl, created),
				ScheduleID: s.ID,
				TemplateID: s.TemplateID,
				DueDate:    due,
				Status:     models.TaskStatusPending,
				Priority:   ClassifyPriority(due, now),
			})
			created++
		}
		// One day past the emitted occurrence; NextDueDate treats the
		// reference day as covered, so this cannot re-emit it.
		due, ok = NextDueDate(s, due.AddDate(0, 0, 1))
	}
	return proposals, nil
}
