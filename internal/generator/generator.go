// Package generator drives task generation end to end: it loads the state the
// pure core needs, persists what the core proposes, and advances the rotation
// cursor in the same transaction as the task batch.
package generator

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitecheckhq/sitecheck/internal/metrics"
	"github.com/sitecheckhq/sitecheck/internal/models"
	"github.com/sitecheckhq/sitecheck/internal/repo"
	"github.com/sitecheckhq/sitecheck/internal/taskgen"
)

// Service runs task generation against the store. Now is injectable so runs
// are reproducible in tests; nil means wall clock.
type Service struct {
	DB            *sql.DB
	Schedules     *repo.ScheduleRepo
	Tasks         *repo.TaskRepo
	Templates     *repo.TemplateRepo
	LookaheadDays int
	Now           func() time.Time
}

// New wires a Service from a database handle.
func New(db *sql.DB, lookaheadDays int) *Service {
	return &Service{
		DB:            db,
		Schedules:     repo.NewScheduleRepo(db),
		Tasks:         repo.NewTaskRepo(db),
		Templates:     repo.NewTemplateRepo(db),
		LookaheadDays: lookaheadDays,
	}
}

func (g *Service) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// ScheduleFailure records one schedule that could not generate during a run.
type ScheduleFailure struct {
	ScheduleID int    `json:"schedule_id"`
	Error      string `json:"error"`
}

// Summary reports what a RunAll pass did.
type Summary struct {
	SchedulesProcessed int               `json:"schedules_processed"`
	TasksCreated       int               `json:"tasks_created"`
	Failures           []ScheduleFailure `json:"failures,omitempty"`
}

// RunSchedule generates and persists tasks for one schedule. lookaheadDays
// <= 0 falls back to the service default. The task batch and the advanced
// rotation cursor commit together; returns how many tasks were actually
// inserted (rows lost to a concurrent run's unique conflict don't count).
func (g *Service) RunSchedule(ctx context.Context, s models.Schedule, lookaheadDays int) (int, error) {
	if lookaheadDays <= 0 {
		lookaheadDays = g.LookaheadDays
	}

	var tpl *models.CheckTemplate
	if s.TemplateID != nil {
		var err error
		tpl, err = g.Templates.GetByID(ctx, *s.TemplateID)
		if err != nil {
			return 0, fmt.Errorf("load template %d: %w", *s.TemplateID, err)
		}
	}

	existing, err := g.Tasks.ListBySchedule(ctx, s.ID)
	if err != nil {
		return 0, fmt.Errorf("load tasks for schedule %d: %w", s.ID, err)
	}

	proposals, err := taskgen.GenerateTasks(s, existing, g.now(), lookaheadDays, tpl)
	if err != nil {
		return 0, err
	}
	if len(proposals) == 0 {
		return 0, nil
	}

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	inserted, err := g.Tasks.InsertBatchTx(ctx, tx, proposals)
	if err != nil {
		return 0, fmt.Errorf("insert tasks for schedule %d: %w", s.ID, err)
	}
	cursor := taskgen.NextRotationCursor(s, len(proposals))
	if err := g.Schedules.SetRotationCursorTx(ctx, tx, s.ID, cursor); err != nil {
		return 0, fmt.Errorf("advance rotation cursor for schedule %d: %w", s.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	slog.Info("schedule generated",
		"schedule_id", s.ID,
		"proposed", len(proposals),
		"inserted", inserted,
		"rotation_cursor", cursor)
	return inserted, nil
}

// RunAll generates tasks for every active schedule. A schedule that fails is
// recorded and skipped; the run continues with the rest.
func (g *Service) RunAll(ctx context.Context) (Summary, error) {
	schedules, err := g.Schedules.ListActive(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list active schedules: %w", err)
	}

	var sum Summary
	for _, s := range schedules {
		sum.SchedulesProcessed++
		n, err := g.RunSchedule(ctx, s, 0)
		if err != nil {
			slog.Error("schedule generation failed", "schedule_id", s.ID, "error", err)
			sum.Failures = append(sum.Failures, ScheduleFailure{ScheduleID: s.ID, Error: err.Error()})
			continue
		}
		sum.TasksCreated += n
	}

	metrics.RecordGeneration(sum.TasksCreated, len(sum.Failures))
	slog.Info("generation run complete",
		"schedules", sum.SchedulesProcessed,
		"tasks_created", sum.TasksCreated,
		"failures", len(sum.Failures))
	return sum, nil
}
