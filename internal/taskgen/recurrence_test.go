package taskgen

import (
	"testing"
	"time"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeSchedule(freq string, start time.Time) models.Schedule {
	return models.Schedule{ID: 1, Frequency: freq, StartDate: start, Active: true}
}

func TestNextDueDate_Inactive(t *testing.T) {
	s := activeSchedule(models.FrequencyDaily, date(2024, 1, 1))
	s.Active = false
	if _, ok := NextDueDate(s, date(2024, 3, 1)); ok {
		t.Error("inactive schedule should have no next due date")
	}
}

func TestNextDueDate_UnknownFrequency(t *testing.T) {
	s := activeSchedule("biweekly", date(2024, 1, 1))
	if _, ok := NextDueDate(s, date(2024, 3, 1)); ok {
		t.Error("unknown frequency should not fabricate a date")
	}
}

func TestNextDueDate_StartInFuture(t *testing.T) {
	s := activeSchedule(models.FrequencyMonthly, date(2024, 6, 1))
	got, ok := NextDueDate(s, date(2024, 3, 15))
	if !ok || !got.Equal(date(2024, 6, 1)) {
		t.Errorf("got %v ok=%v, want start date 2024-06-01", got, ok)
	}
}

func TestNextDueDate_ReferenceDayIsCovered(t *testing.T) {
	// The reference day itself is skipped, even when it is an occurrence.
	cases := []struct {
		freq string
		ref  time.Time
		want time.Time
	}{
		{models.FrequencyDaily, date(2024, 3, 10), date(2024, 3, 11)},
		{models.FrequencyWeekly, date(2024, 1, 8), date(2024, 1, 15)},
		{models.FrequencyMonthly, date(2024, 2, 1), date(2024, 3, 1)},
	}
	for _, tc := range cases {
		s := activeSchedule(tc.freq, date(2024, 1, 1))
		got, ok := NextDueDate(s, tc.ref)
		if !ok || !got.Equal(tc.want) {
			t.Errorf("%s ref %v: got %v ok=%v, want %v", tc.freq, tc.ref, got, ok, tc.want)
		}
	}
}

func TestNextDueDate_SkipsElapsedHistory(t *testing.T) {
	// A start date decades in the past must resolve directly, not by walking
	// every elapsed occurrence.
	cases := []struct {
		freq  string
		start time.Time
		ref   time.Time
		want  time.Time
	}{
		{models.FrequencyDaily, date(1990, 1, 1), date(2024, 3, 15), date(2024, 3, 16)},
		{models.FrequencyWeekly, date(1990, 1, 1), date(2024, 3, 15), date(2024, 3, 18)},
		{models.FrequencyMonthly, date(1990, 1, 15), date(2024, 3, 20), date(2024, 4, 15)},
		{models.FrequencyQuarterly, date(2000, 1, 1), date(2024, 2, 10), date(2024, 4, 1)},
		{models.FrequencyAnnual, date(2000, 7, 1), date(2024, 3, 15), date(2024, 7, 1)},
	}
	for _, tc := range cases {
		s := activeSchedule(tc.freq, tc.start)
		got, ok := NextDueDate(s, tc.ref)
		if !ok || !got.Equal(tc.want) {
			t.Errorf("%s start %v ref %v: got %v ok=%v, want %v", tc.freq, tc.start, tc.ref, got, ok, tc.want)
		}
	}
}

func TestNextDueDate_MonthEndClamping(t *testing.T) {
	// Monthly from Jan 31: each month fires on its last day when shorter,
	// without ever skipping or repeating a month.
	s := activeSchedule(models.FrequencyMonthly, date(2024, 1, 31))
	want := []time.Time{
		date(2024, 2, 29), // leap year
		date(2024, 3, 31),
		date(2024, 4, 30),
		date(2024, 5, 31),
		date(2024, 6, 30),
	}
	ref := date(2024, 1, 31)
	for i, w := range want {
		got, ok := NextDueDate(s, ref)
		if !ok || !got.Equal(w) {
			t.Fatalf("occurrence %d: got %v ok=%v, want %v", i, got, ok, w)
		}
		ref = got
	}
}

func TestNextDueDate_AnnualLeapDay(t *testing.T) {
	s := activeSchedule(models.FrequencyAnnual, date(2024, 2, 29))
	got, ok := NextDueDate(s, date(2024, 3, 1))
	if !ok || !got.Equal(date(2025, 2, 28)) {
		t.Errorf("got %v ok=%v, want 2025-02-28", got, ok)
	}
}

func TestNextDueDate_TimeOfDayIgnored(t *testing.T) {
	// A late-evening reference on an occurrence day behaves like midnight of
	// that day.
	s := activeSchedule(models.FrequencyDaily, date(2024, 1, 1))
	ref := time.Date(2024, 3, 10, 23, 45, 0, 0, time.UTC)
	got, ok := NextDueDate(s, ref)
	if !ok || !got.Equal(date(2024, 3, 11)) {
		t.Errorf("got %v ok=%v, want 2024-03-11", got, ok)
	}
}

func TestNextDueDate_MonotonicAdvancement(t *testing.T) {
	for _, freq := range []string{
		models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly,
		models.FrequencyQuarterly, models.FrequencyAnnual,
	} {
		s := activeSchedule(freq, date(2023, 1, 31))
		ref := date(2023, 1, 1)
		prev := time.Time{}
		for i := 0; i < 50; i++ {
			got, ok := NextDueDate(s, ref)
			if !ok {
				t.Fatalf("%s: no due date at step %d", freq, i)
			}
			if !got.After(prev) {
				t.Fatalf("%s: due dates not strictly increasing: %v then %v", freq, prev, got)
			}
			prev = got
			ref = got.AddDate(0, 0, 1)
		}
	}
}
