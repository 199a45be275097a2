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

type PgxWorkerRepository struct {
	db *pgxpool.Pool
}

func newPgxWorkerRepository(db *pgxpool.Pool) portsrepo.WorkerRepositoryFacade {
	return &PgxWorkerRepository{db: db}
}

// Ensure PgxWorkerRepository implements portsrepo.WorkerRepositoryFacade
var _ portsrepo.WorkerRepositoryFacade = (*PgxWorkerRepository)(nil)

func toModelWorker(d domain.Worker) models.Worker {
	return models.Worker{
		WorkerID:         d.WorkerID,
		TenantID:         d.TenantID,
		UserID:           d.UserID,
		EmploymentStatus: string(d.EmploymentStatus),
		HireDate:         d.HireDate,
		HourlyRate:       d.HourlyRate,
		AuditFields:      mapping.ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
}

func toDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID:         m.WorkerID,
		TenantID:         m.TenantID,
		UserID:           m.UserID,
		EmploymentStatus: domain.EmploymentStatus(m.EmploymentStatus),
		HireDate:         m.HireDate,
		HourlyRate:       m.HourlyRate,
		AuditFields:      mapping.ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
}

const workerColumns = `worker_id, tenant_id, user_id, employment_status, hire_date, hourly_rate, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanWorker(row pgx.Row) (models.Worker, error) {
	var m models.Worker
	err := row.Scan(
		&m.WorkerID,
		&m.TenantID,
		&m.UserID,
		&m.EmploymentStatus,
		&m.HireDate,
		&m.HourlyRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	m := toModelWorker(worker)
	query := `
        INSERT INTO workers (worker_id, tenant_id, user_id, employment_status, hire_date, hourly_rate, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.WorkerID,
		m.TenantID,
		m.UserID,
		m.EmploymentStatus,
		m.HireDate,
		m.HourlyRate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("user %s already has a worker profile: %w", m.UserID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;`
	m, err := scanWorker(r.db.QueryRow(ctx, query, workerID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker by ID %s: %w", workerID, err)
	}
	d := toDomainWorker(m)
	return &d, nil
}

func (r *PgxWorkerRepository) ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + workerColumns + `
        FROM workers
        WHERE tenant_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	workers := []domain.Worker{}
	for rows.Next() {
		m, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		workers = append(workers, toDomainWorker(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating worker rows: %w", rows.Err())
	}

	return workers, nil
}

func (r *PgxWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	m := toModelWorker(worker)
	query := `
        UPDATE workers
        SET employment_status = $1, hourly_rate = $2, last_updated_at = $3, last_updated_by = $4
        WHERE worker_id = $5 AND tenant_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.EmploymentStatus,
		m.HourlyRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.WorkerID,
		m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update worker query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWorkerRepository) MarkWorkerDeleted(ctx context.Context, tenantID, workerID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE workers
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE worker_id = $3 AND tenant_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, workerID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark worker as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
