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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLocationRepository struct {
	db *pgxpool.Pool
}

func newPgxLocationRepository(db *pgxpool.Pool) portsrepo.LocationRepositoryFacade {
	return &PgxLocationRepository{db: db}
}

// Ensure PgxLocationRepository implements portsrepo.LocationRepositoryFacade
var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

func toModelLocation(d domain.Location) models.Location {
	return models.Location{
		LocationID:  d.LocationID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		Address:     d.Address,
		AuditFields: mapping.ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

func toDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID:  m.LocationID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Address:     m.Address,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	m := toModelLocation(location)
	query := `
        INSERT INTO locations (location_id, tenant_id, name, address, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.LocationID,
		m.TenantID,
		m.Name,
		m.Address,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, tenantID, locationID string) (*domain.Location, error) {
	query := `
		SELECT location_id, tenant_id, name, address, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM locations
		WHERE location_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;
	`
	var m models.Location
	err := r.db.QueryRow(ctx, query, locationID, tenantID).Scan(
		&m.LocationID,
		&m.TenantID,
		&m.Name,
		&m.Address,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find location by ID %s: %w", locationID, err)
	}

	d := toDomainLocation(m)
	return &d, nil
}

func (r *PgxLocationRepository) ListLocations(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Location, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT location_id, tenant_id, name, address, created_at, created_by, last_updated_at, last_updated_by, deleted_at
        FROM locations
        WHERE tenant_id = $1 AND deleted_at IS NULL
        ORDER BY name ASC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		var m models.Location
		err := rows.Scan(
			&m.LocationID,
			&m.TenantID,
			&m.Name,
			&m.Address,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, toDomainLocation(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", rows.Err())
	}

	return locations, nil
}

func (r *PgxLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	m := toModelLocation(location)
	query := `
        UPDATE locations
        SET name = $1, address = $2, last_updated_at = $3, last_updated_by = $4
        WHERE location_id = $5 AND tenant_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Address,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LocationID,
		m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update location query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("location not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLocationRepository) MarkLocationDeleted(ctx context.Context, tenantID, locationID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE locations
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE location_id = $3 AND tenant_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, locationID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark location as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("location not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
