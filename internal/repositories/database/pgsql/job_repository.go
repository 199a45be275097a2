package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	"github.com/crewstack/workforce_app/internal/models"
	"github.com/crewstack/workforce_app/internal/utils/mapping"
	"github.com/crewstack/workforce_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(pool *pgxpool.Pool) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJobRepository implements portsrepo.JobRepositoryFacade
var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

const jobColumns = `job_id, tenant_id, location_id, title, description, status, scheduled_start, scheduled_end, completed_at, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanJob(row pgx.Row) (models.Job, error) {
	var m models.Job
	err := row.Scan(
		&m.JobID,
		&m.TenantID,
		&m.LocationID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.ScheduledStart,
		&m.ScheduledEnd,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	m := mapping.ToModelJob(job)
	query := `
        INSERT INTO jobs (job_id, tenant_id, location_id, title, description, status, scheduled_start, scheduled_end, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.JobID,
		m.TenantID,
		m.LocationID,
		m.Title,
		m.Description,
		m.Status,
		m.ScheduledStart,
		m.ScheduledEnd,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, tenantID, jobID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1 AND tenant_id = $2 AND deleted_at IS NULL;`
	m, err := scanJob(r.Pool.QueryRow(ctx, query, jobID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job by ID %s: %w", jobID, err)
	}
	d := mapping.ToDomainJob(m)
	return &d, nil
}

// ListJobs retrieves a paginated list of jobs for a tenant using token-based pagination.
// It returns the list of jobs, a token for the next page (if any), and an error.
func (r *PgxJobRepository) ListJobs(ctx context.Context, tenantID string, statusFilter *domain.JobStatus, limit int, nextToken *string) ([]domain.Job, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	filterClause := `WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []interface{}{tenantID}

	if statusFilter != nil {
		args = append(args, string(*statusFilter))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable; job_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, job_id DESC`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastJobID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastJobID)
		filterClause += ` AND (created_at, job_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query jobs for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelJobs := make([]models.Job, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan job row for tenant "+tenantID, scanErr)
		}
		modelJobs = append(modelJobs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating job rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	results := modelJobs
	if len(modelJobs) > limit {
		lastJob := modelJobs[limit-1]
		newToken := pagination.EncodeToken(lastJob.CreatedAt, lastJob.JobID)
		nextTokenVal = &newToken
		results = modelJobs[:limit]
	}

	domainJobs := make([]domain.Job, len(results))
	for i, m := range results {
		domainJobs[i] = mapping.ToDomainJob(m)
	}

	return domainJobs, nextTokenVal, nil
}

func (r *PgxJobRepository) ListJobsByLocation(ctx context.Context, tenantID, locationID string, limit int, offset int) ([]domain.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + jobColumns + `
        FROM jobs
        WHERE tenant_id = $1 AND location_id = $2 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4;
    `
	rows, err := r.Pool.Query(ctx, query, tenantID, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by location: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		m, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, mapping.ToDomainJob(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", rows.Err())
	}

	return jobs, nil
}

func (r *PgxJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	m := mapping.ToModelJob(job)
	query := `
        UPDATE jobs
        SET title = $1, description = $2, scheduled_start = $3, scheduled_end = $4, last_updated_at = $5, last_updated_by = $6
        WHERE job_id = $7 AND tenant_id = $8 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Description,
		m.ScheduledStart,
		m.ScheduledEnd,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.JobID,
		m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update job query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxJobRepository) UpdateJobStatus(ctx context.Context, tenantID, jobID string, status domain.JobStatus, completedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE jobs
        SET status = $1, completed_at = $2, last_updated_at = $3, last_updated_by = $4
        WHERE job_id = $5 AND tenant_id = $6 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), completedAt, updatedAt, updatedBy, jobID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxJobRepository) MarkJobDeleted(ctx context.Context, tenantID, jobID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE jobs
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE job_id = $3 AND tenant_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, jobID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark job as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
