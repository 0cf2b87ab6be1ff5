package repo

import (
	"context"
	"database/sql"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// AssetRepo persists inspectable assets.
type AssetRepo struct {
	DB *sql.DB
}

// NewAssetRepo returns a new AssetRepo.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db}
}

const assetColumns = `id, org_id, site_id, name, description, created_at`

// Create inserts a new asset and returns it with id set.
func (r *AssetRepo) Create(ctx context.Context, orgID, siteID int, name, description string) (models.Asset, error) {
	var a models.Asset
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO assets (org_id, site_id, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+assetColumns,
		orgID, siteID, name, description,
	).Scan(&a.ID, &a.OrgID, &a.SiteID, &a.Name, &a.Description, &a.CreatedAt)
	return a, err
}

// GetByID returns one asset by id.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (models.Asset, error) {
	var a models.Asset
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id,
	).Scan(&a.ID, &a.OrgID, &a.SiteID, &a.Name, &a.Description, &a.CreatedAt)
	return a, err
}

// UpdateByID updates name and description for the given id.
func (r *AssetRepo) UpdateByID(ctx context.Context, id int, name, description string) (models.Asset, error) {
	var a models.Asset
	err := r.DB.QueryRowContext(ctx,
		`UPDATE assets
		 SET name = $1, description = $2
		 WHERE id = $3
		 RETURNING `+assetColumns,
		name, description, id,
	).Scan(&a.ID, &a.OrgID, &a.SiteID, &a.Name, &a.Description, &a.CreatedAt)
	return a, err
}

// DeleteByID removes an asset by id.
func (r *AssetRepo) DeleteByID(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}

// ListPaginated returns assets ordered by id. limit/offset for pagination.
func (r *AssetRepo) ListPaginated(ctx context.Context, limit, offset int) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.OrgID, &a.SiteID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// SearchPaginated returns assets whose name or description matches query, case-insensitive.
func (r *AssetRepo) SearchPaginated(ctx context.Context, query string, limit, offset int) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+`
		 FROM assets
		 WHERE name ILIKE $1 OR description ILIKE $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		"%"+query+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.OrgID, &a.SiteID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
