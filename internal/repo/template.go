package repo

import (
	"context"
	"database/sql"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// TemplateRepo reads and writes check templates. Templates are read-only for
// the generation core; CRUD exists for administration.
type TemplateRepo struct {
	DB *sql.DB
}

// NewTemplateRepo returns a new TemplateRepo.
func NewTemplateRepo(db *sql.DB) *TemplateRepo {
	return &TemplateRepo{DB: db}
}

// List returns all templates ordered by id.
func (r *TemplateRepo) List(ctx context.Context) ([]models.CheckTemplate, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, org_id, name, assign_strategy, created_at FROM check_templates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.CheckTemplate
	for rows.Next() {
		var t models.CheckTemplate
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Name, &t.AssignStrategy, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID returns one template by id, or nil when it does not exist.
func (r *TemplateRepo) GetByID(ctx context.Context, id int) (*models.CheckTemplate, error) {
	t := &models.CheckTemplate{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, org_id, name, assign_strategy, created_at FROM check_templates WHERE id = $1`, id).
		Scan(&t.ID, &t.OrgID, &t.Name, &t.AssignStrategy, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new template and returns it with id set.
func (r *TemplateRepo) Create(ctx context.Context, orgID int, name string, strategy *string) (*models.CheckTemplate, error) {
	t := &models.CheckTemplate{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO check_templates (org_id, name, assign_strategy)
		 VALUES ($1, $2, $3)
		 RETURNING id, org_id, name, assign_strategy, created_at`,
		orgID, name, strategy).
		Scan(&t.ID, &t.OrgID, &t.Name, &t.AssignStrategy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
