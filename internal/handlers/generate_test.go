package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sitecheckhq/sitecheck/internal/generator"
	"github.com/sitecheckhq/sitecheck/internal/repo"
)

var scheduleCols = []string{
	"id", "org_id", "site_id", "template_id", "asset_ids", "legacy_asset_id",
	"frequency", "start_date", "active", "rotation_cursor", "created_at",
}

func TestGenerateHandler_GenerateForSchedule_NothingDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Next annual occurrence is 2025-01-01, outside the 30-day window.
	mock.ExpectQuery(`SELECT (.+) FROM schedules`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(5, 1, 2, nil, "{}", nil, "annual", start, true, 0, time.Now()))
	mock.ExpectQuery(`SELECT (.+) FROM tasks`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(taskCols))

	gen := generator.New(db, 30)
	gen.Now = func() time.Time { return now }
	h := &GenerateHandler{Schedules: repo.NewScheduleRepo(db), Generator: gen}

	req := requestWithChiURLParams("POST", "/schedules/5/generate", nil, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	h.GenerateForSchedule(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GenerateForSchedule status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var out map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["tasks_created"] != 0 || out["schedule_id"] != 5 {
		t.Errorf("unexpected response: %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGenerateHandler_GenerateForSchedule_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM schedules`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	h := &GenerateHandler{Schedules: repo.NewScheduleRepo(db), Generator: generator.New(db, 30)}

	req := requestWithChiURLParams("POST", "/schedules/404/generate", nil, map[string]string{"id": "404"})
	rr := httptest.NewRecorder()
	h.GenerateForSchedule(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GenerateForSchedule status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGenerateHandler_GenerateForSchedule_Inactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM schedules`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(5, 1, 2, nil, "{}", nil, "daily", start, false, 0, time.Now()))

	h := &GenerateHandler{Schedules: repo.NewScheduleRepo(db), Generator: generator.New(db, 30)}

	req := requestWithChiURLParams("POST", "/schedules/5/generate", nil, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	h.GenerateForSchedule(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("GenerateForSchedule status: got %d, want 409", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGenerateHandler_GenerateForSchedule_BadLookahead(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &GenerateHandler{Schedules: repo.NewScheduleRepo(db), Generator: generator.New(db, 30)}

	req := requestWithChiURLParams("POST", "/schedules/5/generate?lookahead_days=0", nil, map[string]string{"id": "5"})
	rr := httptest.NewRecorder()
	h.GenerateForSchedule(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("GenerateForSchedule status: got %d, want 400", rr.Code)
	}
}

func TestGenerateHandler_GenerateAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// No active schedules: the pass succeeds with zero work.
	mock.ExpectQuery(`SELECT (.+) FROM schedules`).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	h := &GenerateHandler{Schedules: repo.NewScheduleRepo(db), Generator: generator.New(db, 30)}

	req := httptest.NewRequest("POST", "/generate", nil)
	rr := httptest.NewRecorder()
	h.GenerateAll(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GenerateAll status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var out struct {
		SchedulesProcessed int `json:"schedules_processed"`
		TasksCreated       int `json:"tasks_created"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.SchedulesProcessed != 0 || out.TasksCreated != 0 {
		t.Errorf("unexpected summary: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
