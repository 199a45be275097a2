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

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

const tenantColumns = `tenant_id, name, slug, status, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanTenant(row pgx.Row) (models.Tenant, error) {
	var m models.Tenant
	err := row.Scan(
		&m.TenantID,
		&m.Name,
		&m.Slug,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
        INSERT INTO tenants (tenant_id, name, slug, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		m.Slug,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("tenant slug %s already taken: %w", m.Slug, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1 AND deleted_at IS NULL;`
	m, err := scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by ID %s: %w", tenantID, err)
	}
	d := mapping.ToDomainTenant(m)
	return &d, nil
}

func (r *PgxTenantRepository) FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1 AND deleted_at IS NULL;`
	m, err := scanTenant(r.Pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by slug %s: %w", slug, err)
	}
	d := mapping.ToDomainTenant(m)
	return &d, nil
}

func (r *PgxTenantRepository) ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + tenantColumns + `
        FROM tenants
        WHERE deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		m, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, mapping.ToDomainTenant(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", rows.Err())
	}

	return tenants, nil
}

func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
        UPDATE tenants
        SET name = $1, status = $2, last_updated_at = $3, last_updated_by = $4
        WHERE tenant_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update tenant query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTenantRepository) MarkTenantDeleted(ctx context.Context, tenantID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE tenants
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark tenant as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
