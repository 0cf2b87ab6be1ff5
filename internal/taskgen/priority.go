package taskgen

import (
	"math"
	"time"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// ClassifyPriority maps a due date's distance from now onto a discrete urgency
// level. Days until due are rounded up, so any part of a day counts as a full
// day. Overdue and due-today both classify as urgent.
func ClassifyPriority(due, now time.Time) string {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days <= 0:
		return models.PriorityUrgent
	case days <= 1:
		return models.PriorityHigh
	case days <= 3:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
