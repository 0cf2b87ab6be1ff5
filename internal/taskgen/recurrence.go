package taskgen

import (
	"time"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// startOfDay normalizes t to midnight UTC. All recurrence arithmetic runs at
// calendar-day precision so time-of-day or timezone jitter cannot shift an
// occurrence across a date boundary.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDueDate returns the first occurrence of s strictly after ref's calendar
// day. The reference day itself counts as already covered, so seeding the next
// call with the previous result advances instead of repeating. ok is false
// when the schedule is inactive or its frequency is unknown.
func NextDueDate(s models.Schedule, ref time.Time) (time.Time, bool) {
	if !s.Active {
		return time.Time{}, false
	}
	start := startOfDay(s.StartDate)
	refDay := startOfDay(ref)
	if start.After(refDay) {
		return start, true
	}
	switch s.Frequency {
	case models.FrequencyDaily:
		return nextByDays(start, refDay, 1), true
	case models.FrequencyWeekly:
		return nextByDays(start, refDay, 7), true
	case models.FrequencyMonthly:
		return nextByMonths(start, refDay, 1), true
	case models.FrequencyQuarterly:
		return nextByMonths(start, refDay, 3), true
	case models.FrequencyAnnual:
		return nextByMonths(start, refDay, 12), true
	}
	return time.Time{}, false
}

// nextByDays finds the first start+n*step days strictly after refDay with
// integer division, so a start date years in the past costs the same as one
// last week. Both arguments are UTC midnights; requires refDay >= start.
func nextByDays(start, refDay time.Time, step int) time.Time {
	elapsed := int(refDay.Sub(start).Hours()) / 24
	n := elapsed/step + 1
	return start.AddDate(0, 0, n*step)
}

// nextByMonths finds the first start+n*step months strictly after refDay.
// The starting n comes from the calendar month difference, which lands at most
// one cycle early, so the loop runs at most twice. Requires refDay >= start.
func nextByMonths(start, refDay time.Time, step int) time.Time {
	months := (refDay.Year()-start.Year())*12 + int(refDay.Month()) - int(start.Month())
	n := months / step
	if n < 0 {
		n = 0
	}
	for {
		occ := addMonths(start, n*step)
		if occ.After(refDay) {
			return occ
		}
		n++
	}
}

// addMonths adds n months to start, clamping the day-of-month to the target
// month's last day. A Jan 31 monthly schedule lands on Feb 29, Mar 31, Apr 30
// rather than rolling into the following month.
func addMonths(start time.Time, n int) time.Time {
	y, m, d := start.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
