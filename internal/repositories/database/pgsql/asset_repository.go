package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	"github.com/crewstack/workforce_app/internal/models"
	"github.com/crewstack/workforce_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssetRepository struct {
	db *pgxpool.Pool
}

func newPgxAssetRepository(db *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{db: db}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepositoryFacade
var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

func toModelAsset(d domain.Asset) models.Asset {
	return models.Asset{
		AssetID:          d.AssetID,
		TenantID:         d.TenantID,
		LocationID:       d.LocationID,
		Name:             d.Name,
		AssetTag:         d.AssetTag,
		Status:           string(d.Status),
		AssignedWorkerID: d.AssignedWorkerID,
		AuditFields:      mapping.ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
}

func toDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:          m.AssetID,
		TenantID:         m.TenantID,
		LocationID:       m.LocationID,
		Name:             m.Name,
		AssetTag:         m.AssetTag,
		Status:           domain.AssetStatus(m.Status),
		AssignedWorkerID: m.AssignedWorkerID,
		AuditFields:      mapping.ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
}

const assetColumns = `asset_id, tenant_id, location_id, name, asset_tag, status, assigned_worker_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.TenantID,
		&m.LocationID,
		&m.Name,
		&m.AssetTag,
		&m.Status,
		&m.AssignedWorkerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	m := toModelAsset(asset)
	query := `
        INSERT INTO assets (asset_id, tenant_id, location_id, name, asset_tag, status, assigned_worker_id, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.AssetID,
		m.TenantID,
		m.LocationID,
		m.Name,
		m.AssetTag,
		m.Status,
		m.AssignedWorkerID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("asset tag %s already in use: %w", m.AssetTag, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, tenantID, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;`
	m, err := scanAsset(r.db.QueryRow(ctx, query, assetID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	d := toDomainAsset(m)
	return &d, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Asset, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + assetColumns + `
        FROM assets
        WHERE tenant_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, toDomainAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}

	return assets, nil
}

func (r *PgxAssetRepository) ListAssetsByWorker(ctx context.Context, tenantID, workerID string) ([]domain.Asset, error) {
	query := `
        SELECT ` + assetColumns + `
        FROM assets
        WHERE tenant_id = $1 AND assigned_worker_id = $2 AND deleted_at IS NULL
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query, tenantID, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets by worker: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, toDomainAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}

	return assets, nil
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	m := toModelAsset(asset)
	query := `
        UPDATE assets
        SET location_id = $1, name = $2, status = $3, assigned_worker_id = $4, last_updated_at = $5, last_updated_by = $6
        WHERE asset_id = $7 AND tenant_id = $8 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.LocationID,
		m.Name,
		m.Status,
		m.AssignedWorkerID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AssetID,
		m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update asset query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAssetRepository) MarkAssetDeleted(ctx context.Context, tenantID, assetID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE assets
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE asset_id = $3 AND tenant_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, assetID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark asset as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
