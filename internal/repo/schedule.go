package repo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// ScheduleRepo persists check schedules.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

const scheduleColumns = `id, org_id, site_id, template_id, asset_ids, legacy_asset_id, frequency, start_date, active, rotation_cursor, created_at`

func scanSchedule(row interface{ Scan(...any) error }) (models.Schedule, error) {
	var s models.Schedule
	var assetIDs pq.Int64Array
	err := row.Scan(&s.ID, &s.OrgID, &s.SiteID, &s.TemplateID, &assetIDs, &s.LegacyAssetID,
		&s.Frequency, &s.StartDate, &s.Active, &s.RotationCursor, &s.CreatedAt)
	if err != nil {
		return models.Schedule{}, err
	}
	s.AssetIDs = fromInt64Array(assetIDs)
	return s, nil
}

func fromInt64Array(a pq.Int64Array) []int {
	if len(a) == 0 {
		return nil
	}
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64Array(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, len(ids))
	for i, v := range ids {
		out[i] = int64(v)
	}
	return out
}

// Count returns the total number of schedules.
func (r *ScheduleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schedules").Scan(&n)
	return n, err
}

// List returns schedules, most recent first. limit/offset for pagination.
func (r *ScheduleRepo) List(ctx context.Context, limit, offset int) ([]models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListActive returns all active schedules (for the generation runner).
func (r *ScheduleRepo) ListActive(ctx context.Context) ([]models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE active = true
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID returns one schedule by id, or nil when it does not exist.
func (r *ScheduleRepo) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE id = $1
	`
	s, err := scanSchedule(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new schedule and returns it with id, cursor, and created_at set.
func (r *ScheduleRepo) Create(ctx context.Context, s models.Schedule) (*models.Schedule, error) {
	query := `
		INSERT INTO schedules (org_id, site_id, template_id, asset_ids, legacy_asset_id, frequency, start_date, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + scheduleColumns + `
	`
	created, err := scanSchedule(r.DB.QueryRowContext(ctx, query,
		s.OrgID, s.SiteID, s.TemplateID, toInt64Array(s.AssetIDs), s.LegacyAssetID,
		s.Frequency, s.StartDate, s.Active))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the mutable fields of the schedule with the given id.
func (r *ScheduleRepo) Update(ctx context.Context, id int, s models.Schedule) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE schedules
		 SET site_id = $1, template_id = $2, asset_ids = $3, legacy_asset_id = $4,
		     frequency = $5, start_date = $6, active = $7
		 WHERE id = $8`,
		s.SiteID, s.TemplateID, toInt64Array(s.AssetIDs), s.LegacyAssetID,
		s.Frequency, s.StartDate, s.Active, id,
	)
	return err
}

// Deactivate flags a schedule as inactive. Schedules are never deleted; their
// tasks keep referencing them.
func (r *ScheduleRepo) Deactivate(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE schedules SET active = false WHERE id = $1`, id)
	return err
}

// SetRotationCursorTx persists the advanced rotation cursor inside the same
// transaction that wrote the generated task batch.
func (r *ScheduleRepo) SetRotationCursorTx(ctx context.Context, tx *sql.Tx, id, cursor int) error {
	_, err := tx.ExecContext(ctx, `UPDATE schedules SET rotation_cursor = $1 WHERE id = $2`, cursor, id)
	return err
}
