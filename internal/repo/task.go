package repo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// TaskRepo persists materialized inspection tasks.
type TaskRepo struct {
	DB *sql.DB
}

// NewTaskRepo returns a new TaskRepo.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

const taskColumns = `id, org_id, site_id, asset_id, schedule_id, template_id, due_date, status, assignee_id, priority, created_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.OrgID, &t.SiteID, &t.AssetID, &t.ScheduleID, &t.TemplateID,
		&t.DueDate, &t.Status, &t.AssigneeID, &t.Priority, &t.CreatedAt)
	return t, err
}

// TaskFilter narrows List results. Zero values mean "no filter".
type TaskFilter struct {
	ScheduleID int
	SiteID     int
	Status     string
}

// List returns tasks ordered by due date, oldest first. limit/offset for pagination.
func (r *TaskRepo) List(ctx context.Context, f TaskFilter, limit, offset int) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1 = 0 OR schedule_id = $1)
		  AND ($2 = 0 OR site_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY due_date, id
		LIMIT $4 OFFSET $5
	`
	rows, err := r.DB.QueryContext(ctx, query, f.ScheduleID, f.SiteID, f.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListBySchedule returns every task of one schedule, the snapshot the
// generation core checks proposals against.
func (r *TaskRepo) ListBySchedule(ctx context.Context, scheduleID int) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE schedule_id = $1
		ORDER BY due_date
	`
	rows, err := r.DB.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID returns one task by id, or nil when it does not exist.
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1
	`
	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InsertBatchTx writes a batch of task proposals inside tx and returns how
// many rows were actually inserted. A unique violation on (schedule_id,
// due_date) means a concurrent run already materialized that occurrence; the
// row is skipped rather than failing the batch.
func (r *TaskRepo) InsertBatchTx(ctx context.Context, tx *sql.Tx, tasks []models.Task) (int, error) {
	inserted := 0
	for _, t := range tasks {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (org_id, site_id, asset_id, schedule_id, template_id, due_date, status, priority)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (schedule_id, due_date) DO NOTHING`,
			t.OrgID, t.SiteID, t.AssetID, t.ScheduleID, t.TemplateID, t.DueDate, t.Status, t.Priority,
		)
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// UpdateStatus transitions a task's status.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, status, id)
	return err
}

// Assign sets (or clears, with nil) the task's assignee.
func (r *TaskRepo) Assign(ctx context.Context, id int, assigneeID *int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE tasks SET assignee_id = $1 WHERE id = $2`, assigneeID, id)
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if e, ok := err.(*pq.Error); ok {
		return e.Code == "23505"
	}
	return false
}
