package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	"github.com/crewstack/workforce_app/internal/models"
	"github.com/crewstack/workforce_app/internal/utils/mapping"
	"github.com/crewstack/workforce_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, tenant_id, user_id, action, entity_kind, entity_id, old_values, new_values, ip_address, user_agent, metadata, created_at`

func scanAuditLog(row pgx.Row) (models.AuditLog, error) {
	var m models.AuditLog
	err := row.Scan(
		&m.AuditID,
		&m.TenantID,
		&m.UserID,
		&m.Action,
		&m.EntityKind,
		&m.EntityID,
		&m.OldValues,
		&m.NewValues,
		&m.IPAddress,
		&m.UserAgent,
		&m.Metadata,
		&m.CreatedAt,
	)
	return m, err
}

// insertAuditLogTx appends an audit entry inside an existing transaction.
// Repositories that mutate state call this so the entry commits or rolls back
// together with the change it records.
func insertAuditLogTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return fmt.Errorf("failed to map audit entry: %w", err)
	}
	query := `
        INSERT INTO audit_logs (audit_id, tenant_id, user_id, action, entity_kind, entity_id, old_values, new_values, ip_address, user_agent, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, query,
		m.AuditID,
		m.TenantID,
		m.UserID,
		m.Action,
		m.EntityKind,
		m.EntityID,
		m.OldValues,
		m.NewValues,
		m.IPAddress,
		m.UserAgent,
		m.Metadata,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAuditLogTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAuditRepository) FindAuditLogByID(ctx context.Context, tenantID, auditID string) (*domain.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE audit_id = $1 AND tenant_id = $2;`
	m, err := scanAuditLog(r.Pool.QueryRow(ctx, query, auditID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find audit entry %s: %w", auditID, err)
	}
	d, err := mapping.ToDomainAuditLog(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAuditLogs retrieves a paginated list of audit entries using token-based pagination.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, tenantID string, entityKind *domain.EntityKind, entityID *string, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + auditColumns + ` FROM audit_logs`
	filterClause := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if entityKind != nil {
		args = append(args, string(*entityKind))
		filterClause += ` AND entity_kind = $` + strconv.Itoa(len(args))
	}
	if entityID != nil {
		args = append(args, *entityID)
		filterClause += ` AND entity_id = $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY created_at DESC, audit_id DESC`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastAuditID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastAuditID)
		filterClause += ` AND (created_at, audit_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.AuditLog, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAuditLog(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit row for tenant "+tenantID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		newToken := pagination.EncodeToken(last.CreatedAt, last.AuditID)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries, err := mapping.ToDomainAuditLogSlice(results)
	if err != nil {
		return nil, nil, err
	}

	return domainEntries, nextTokenVal, nil
}

// DeleteAuditLog removes an entry and records the removal in the same
// transaction, so the audit trail never loses the fact that it was pruned.
func (r *PgxAuditRepository) DeleteAuditLog(ctx context.Context, tenantID, auditID string, deletionEntry domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM audit_logs WHERE audit_id = $1 AND tenant_id = $2;`, auditID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete audit entry %s: %w", auditID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("audit entry not found: %w", apperrors.ErrNotFound)
	}

	if err := insertAuditLogTx(ctx, tx, deletionEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
