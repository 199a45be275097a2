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

type PgxQuotaRepository struct {
	BaseRepository
}

func newPgxQuotaRepository(pool *pgxpool.Pool) portsrepo.QuotaRepositoryFacade {
	return &PgxQuotaRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxQuotaRepository implements portsrepo.QuotaRepositoryFacade
var _ portsrepo.QuotaRepositoryFacade = (*PgxQuotaRepository)(nil)

const quotaColumns = `quota_id, tenant_id, quota_type, quota_limit, current_usage, status, next_reset_at, created_at, created_by, last_updated_at, last_updated_by`

func scanQuota(row pgx.Row) (models.TenantQuota, error) {
	var m models.TenantQuota
	err := row.Scan(
		&m.QuotaID,
		&m.TenantID,
		&m.QuotaType,
		&m.QuotaLimit,
		&m.CurrentUsage,
		&m.Status,
		&m.NextResetAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxQuotaRepository) SaveQuota(ctx context.Context, quota domain.TenantQuota) error {
	m := mapping.ToModelTenantQuota(quota)
	query := `
        INSERT INTO tenant_quotas (quota_id, tenant_id, quota_type, quota_limit, current_usage, status, next_reset_at, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.QuotaID,
		m.TenantID,
		m.QuotaType,
		m.QuotaLimit,
		m.CurrentUsage,
		m.Status,
		m.NextResetAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("quota %s already configured for tenant %s: %w", m.QuotaType, m.TenantID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save quota: %w", err)
	}
	return nil
}

func (r *PgxQuotaRepository) FindQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error) {
	query := `SELECT ` + quotaColumns + ` FROM tenant_quotas WHERE tenant_id = $1 AND quota_type = $2;`
	m, err := scanQuota(r.Pool.QueryRow(ctx, query, tenantID, string(quotaType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find quota %s for tenant %s: %w", quotaType, tenantID, err)
	}
	d := mapping.ToDomainTenantQuota(m)
	return &d, nil
}

func (r *PgxQuotaRepository) ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error) {
	query := `SELECT ` + quotaColumns + ` FROM tenant_quotas WHERE tenant_id = $1 ORDER BY quota_type ASC;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotas: %w", err)
	}
	defer rows.Close()

	modelQuotas := []models.TenantQuota{}
	for rows.Next() {
		m, err := scanQuota(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quota row: %w", err)
		}
		modelQuotas = append(modelQuotas, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating quota rows: %w", rows.Err())
	}

	return mapping.ToDomainTenantQuotaSlice(modelQuotas), nil
}

func (r *PgxQuotaRepository) FindQuotasAboveUsage(ctx context.Context, tenantID string, thresholdPercent int) ([]domain.TenantQuota, error) {
	// Unlimited quotas never alert. Exceeded rows always do, which covers
	// a zero limit flipped to exceeded where the percentage test cannot.
	query := `
        SELECT ` + quotaColumns + `
        FROM tenant_quotas
        WHERE tenant_id = $1
          AND (status = 'exceeded' OR (quota_limit > 0 AND current_usage * 100 >= quota_limit * $2))
        ORDER BY quota_type ASC;
    `
	rows, err := r.Pool.Query(ctx, query, tenantID, thresholdPercent)
	if err != nil {
		return nil, fmt.Errorf("failed to query quota alerts: %w", err)
	}
	defer rows.Close()

	modelQuotas := []models.TenantQuota{}
	for rows.Next() {
		m, err := scanQuota(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quota row: %w", err)
		}
		modelQuotas = append(modelQuotas, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating quota rows: %w", rows.Err())
	}

	return mapping.ToDomainTenantQuotaSlice(modelQuotas), nil
}

func (r *PgxQuotaRepository) UpdateQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE tenant_quotas
        SET quota_limit = $1,
            status = CASE WHEN $1 >= 0 AND current_usage >= $1 THEN 'exceeded' ELSE 'ok' END,
            last_updated_at = $2, last_updated_by = $3
        WHERE tenant_id = $4 AND quota_type = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, limit, updatedAt, updatedBy, tenantID, string(quotaType))
	if err != nil {
		return fmt.Errorf("failed to update quota limit: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("quota not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ConsumeQuota claims one unit with a single conditional UPDATE, so two
// concurrent creations can never both squeeze through the last slot. The
// status flips to exceeded as soon as usage reaches the limit.
func (r *PgxQuotaRepository) ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	query := `
        UPDATE tenant_quotas
        SET current_usage = current_usage + 1,
            status = CASE WHEN quota_limit >= 0 AND current_usage + 1 >= quota_limit THEN 'exceeded' ELSE 'ok' END,
            last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND quota_type = $4
          AND (quota_limit < 0 OR current_usage < quota_limit)
        RETURNING ` + quotaColumns + `;
    `
	m, err := scanQuota(r.Pool.QueryRow(ctx, query, updatedAt, updatedBy, tenantID, string(quotaType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either no quota row is configured, or the limit is reached.
			// Distinguish the two so an unconfigured quota stays permissive.
			if _, findErr := r.FindQuota(ctx, tenantID, quotaType); findErr != nil {
				if errors.Is(findErr, apperrors.ErrNotFound) {
					return nil, apperrors.ErrNotFound
				}
				return nil, findErr
			}
			return nil, fmt.Errorf("quota %s limit reached for tenant %s: %w", quotaType, tenantID, apperrors.ErrQuotaExceeded)
		}
		return nil, fmt.Errorf("failed to consume quota: %w", err)
	}
	d := mapping.ToDomainTenantQuota(m)
	return &d, nil
}

// ReleaseQuota returns one unit, flooring usage at zero, and recomputes the
// exceeded status from the new usage.
func (r *PgxQuotaRepository) ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	query := `
        UPDATE tenant_quotas
        SET current_usage = GREATEST(current_usage - 1, 0),
            status = CASE WHEN quota_limit >= 0 AND GREATEST(current_usage - 1, 0) >= quota_limit THEN 'exceeded' ELSE 'ok' END,
            last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND quota_type = $4
        RETURNING ` + quotaColumns + `;
    `
	m, err := scanQuota(r.Pool.QueryRow(ctx, query, updatedAt, updatedBy, tenantID, string(quotaType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to release quota: %w", err)
	}
	d := mapping.ToDomainTenantQuota(m)
	return &d, nil
}

// IncrementQuotaUsage adds amount to usage without a capacity check. The
// sticky exceeded status flips as soon as the new usage reaches the limit.
func (r *PgxQuotaRepository) IncrementQuotaUsage(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	query := `
        UPDATE tenant_quotas
        SET current_usage = current_usage + $1,
            status = CASE WHEN quota_limit >= 0 AND current_usage + $1 >= quota_limit THEN 'exceeded' ELSE 'ok' END,
            last_updated_at = $2, last_updated_by = $3
        WHERE tenant_id = $4 AND quota_type = $5
        RETURNING ` + quotaColumns + `;
    `
	m, err := scanQuota(r.Pool.QueryRow(ctx, query, amount, updatedAt, updatedBy, tenantID, string(quotaType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment quota usage: %w", err)
	}
	d := mapping.ToDomainTenantQuota(m)
	return &d, nil
}

// ResetQuota zeroes a single quota row and schedules its next monthly reset.
func (r *PgxQuotaRepository) ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error) {
	query := `
        UPDATE tenant_quotas
        SET current_usage = 0,
            status = 'ok',
            next_reset_at = next_reset_at + interval '1 month',
            last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND quota_type = $4
        RETURNING ` + quotaColumns + `;
    `
	m, err := scanQuota(r.Pool.QueryRow(ctx, query, updatedAt, updatedBy, tenantID, string(quotaType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to reset quota: %w", err)
	}
	d := mapping.ToDomainTenantQuota(m)
	return &d, nil
}

// ResetQuotaUsage zeroes usage for every quota due for its monthly reset and
// schedules the next one.
func (r *PgxQuotaRepository) ResetQuotaUsage(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
        UPDATE tenant_quotas
        SET current_usage = 0,
            status = 'ok',
            next_reset_at = next_reset_at + interval '1 month',
            last_updated_at = $1
        WHERE next_reset_at <= $1;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to reset quota usage: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
