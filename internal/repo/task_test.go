package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

var taskCols = []string{"id", "org_id", "site_id", "asset_id", "schedule_id", "template_id", "due_date", "status", "assignee_id", "priority", "created_at"}

func TestTaskRepo_List_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, org_id, site_id, asset_id, schedule_id`).
		WithArgs(5, 0, "pending", 50, 0).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(1, 1, 2, 10, 5, nil, due, "pending", nil, "low", now))

	r := NewTaskRepo(db)
	list, err := r.List(context.Background(), TaskFilter{ScheduleID: 5, Status: "pending"}, 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ScheduleID != 5 || list[0].Status != "pending" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].AssetID == nil || *list[0].AssetID != 10 {
		t.Errorf("asset id not decoded: %+v", list[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_ListBySchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE schedule_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(1, 1, 1, nil, 7, nil, due, "pending", nil, "medium", now).
			AddRow(2, 1, 1, nil, 7, nil, due.AddDate(0, 1, 0), "pending", nil, "low", now))

	r := NewTaskRepo(db)
	list, err := r.ListBySchedule(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListBySchedule: %v", err)
	}
	if len(list) != 2 || list[0].AssetID != nil {
		t.Fatalf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_InsertBatchTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	due1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(1, 2, nil, 5, nil, due1, "pending", "low").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second row conflicts with a concurrently created task: 0 rows affected.
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(1, 2, nil, 5, nil, due2, "pending", "low").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	r := NewTaskRepo(db)
	batch := []models.Task{
		{OrgID: 1, SiteID: 2, ScheduleID: 5, DueDate: due1, Status: "pending", Priority: "low"},
		{OrgID: 1, SiteID: 2, ScheduleID: 5, DueDate: due2, Status: "pending", Priority: "low"},
	}
	n, err := r.InsertBatchTx(context.Background(), tx, batch)
	if err != nil {
		t.Fatalf("InsertBatchTx: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted: got %d, want 1 (conflicting row skipped)", n)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE tasks SET status`).
		WithArgs("done", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewTaskRepo(db)
	if err := r.UpdateStatus(context.Background(), 3, "done"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_Assign(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	assignee := 12
	mock.ExpectExec(`UPDATE tasks SET assignee_id`).
		WithArgs(12, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewTaskRepo(db)
	if err := r.Assign(context.Background(), 3, &assignee); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Error("23505 should be a unique violation")
	}
	if IsUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("23503 is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("plain errors are not unique violations")
	}
}
