package generator

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

var taskCols = []string{"id", "org_id", "site_id", "asset_id", "schedule_id", "template_id", "due_date", "status", "assignee_id", "priority", "created_at"}
var scheduleCols = []string{"id", "org_id", "site_id", "template_id", "asset_ids", "legacy_asset_id", "frequency", "start_date", "active", "rotation_cursor", "created_at"}

func fixedNow() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := New(db, 30)
	svc.Now = fixedNow
	return svc, mock
}

func TestService_RunSchedule(t *testing.T) {
	svc, mock := newTestService(t)

	s := models.Schedule{
		ID: 5, OrgID: 1, SiteID: 2,
		Frequency: models.FrequencyMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}

	// No tasks materialized yet.
	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(taskCols))

	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(1, 2, nil, 5, nil, due, "pending", "low").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules SET rotation_cursor`).
		WithArgs(0, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := svc.RunSchedule(context.Background(), s, 0)
	if err != nil {
		t.Fatalf("RunSchedule: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted: got %d, want 1", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestService_RunSchedule_RotationCursorAdvances(t *testing.T) {
	svc, mock := newTestService(t)

	tplID := 9
	strategy := models.StrategyRotate
	s := models.Schedule{
		ID: 6, OrgID: 1, SiteID: 2,
		TemplateID:     &tplID,
		AssetIDs:       []int{100, 200, 300},
		RotationCursor: 1,
		Frequency:      models.FrequencyWeekly,
		StartDate:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Active:         true,
	}

	mock.ExpectQuery(`FROM check_templates`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "name", "assign_strategy", "created_at"}).
			AddRow(9, 1, "extinguisher check", strategy, time.Now()))
	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(taskCols))

	// Weekly from Mar 4, now Mar 15, horizon Apr 14: Mar 18, 25, Apr 1, 8.
	// Rotation starts at cursor 1: assets 200, 300, then wraps to 100, 200.
	expected := []struct {
		due      time.Time
		asset    int
		priority string
	}{
		{time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), 200, "medium"},
		{time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), 300, "low"},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 100, "low"},
		{time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC), 200, "low"},
	}
	mock.ExpectBegin()
	for _, e := range expected {
		mock.ExpectExec(`INSERT INTO tasks`).
			WithArgs(1, 2, e.asset, 6, 9, e.due, "pending", e.priority).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	// (1 + 4 created) mod 3 = 2
	mock.ExpectExec(`UPDATE schedules SET rotation_cursor`).
		WithArgs(2, 6).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := svc.RunSchedule(context.Background(), s, 0)
	if err != nil {
		t.Fatalf("RunSchedule: %v", err)
	}
	if n != 4 {
		t.Errorf("inserted: got %d, want 4", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestService_RunSchedule_NothingDue(t *testing.T) {
	svc, mock := newTestService(t)

	s := models.Schedule{
		ID: 7, OrgID: 1, SiteID: 1,
		Frequency: models.FrequencyAnnual,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}

	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(taskCols))
	// No transaction: nothing before the horizon means nothing to write.

	n, err := svc.RunSchedule(context.Background(), s, 0)
	if err != nil {
		t.Fatalf("RunSchedule: %v", err)
	}
	if n != 0 {
		t.Errorf("inserted: got %d, want 0", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestService_RunAll_IsolatesFailures(t *testing.T) {
	svc, mock := newTestService(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Schedule 1 carries a frequency the core rejects; schedule 2 is fine.
	mock.ExpectQuery(`WHERE active = true`).
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(1, 1, 1, nil, "{}", nil, "hourly", start, true, 0, time.Now()).
			AddRow(2, 1, 1, nil, "{}", nil, "monthly", start, true, 0, time.Now()))

	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(taskCols))

	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(taskCols))
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(1, 1, nil, 2, nil, due, "pending", "low").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules SET rotation_cursor`).
		WithArgs(0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sum, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if sum.SchedulesProcessed != 2 || sum.TasksCreated != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}
	if len(sum.Failures) != 1 || sum.Failures[0].ScheduleID != 1 {
		t.Errorf("failure not recorded: %+v", sum.Failures)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
