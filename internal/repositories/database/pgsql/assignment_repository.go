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
	"github.com/crewstack/workforce_app/internal/platform/metrics"
	"github.com/crewstack/workforce_app/internal/utils/mapping"
	"github.com/crewstack/workforce_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for job assignment data.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, tenant_id, job_id, worker_id, role, status, assigned_at, completed_at, notes, data, created_at, created_by, last_updated_at, last_updated_by`

func scanAssignment(row pgx.Row) (models.JobAssignment, error) {
	var m models.JobAssignment
	err := row.Scan(
		&m.AssignmentID,
		&m.TenantID,
		&m.JobID,
		&m.WorkerID,
		&m.Role,
		&m.Status,
		&m.AssignedAt,
		&m.CompletedAt,
		&m.Notes,
		&m.Data,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAssignment inserts an assignment and its audit entry in one transaction.
// The unique constraint on (job_id, worker_id) is the last line of defense
// against double assignment under concurrency.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.JobAssignment, audit domain.AuditLog) error {
	m, err := mapping.ToModelAssignment(assignment)
	if err != nil {
		return fmt.Errorf("failed to map assignment: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO job_assignments (assignment_id, tenant_id, job_id, worker_id, role, status, assigned_at, completed_at, notes, data, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, query,
		m.AssignmentID,
		m.TenantID,
		m.JobID,
		m.WorkerID,
		m.Role,
		m.Status,
		m.AssignedAt,
		m.CompletedAt,
		m.Notes,
		m.Data,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("worker %s is already assigned to job %s: %w", m.WorkerID, m.JobID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ApplyAssignmentTransition applies a status transition atomically. The update
// is guarded on the expected current status so two racing transitions cannot
// both succeed. When CascadeJob is set and no open assignments remain on the
// job afterwards, the job is completed in the same transaction.
func (r *PgxAssignmentRepository) ApplyAssignmentTransition(ctx context.Context, params portsrepo.AssignmentTransitionParams) error {
	m, err := mapping.ToModelAssignment(domain.JobAssignment{Data: params.Data})
	if err != nil {
		return fmt.Errorf("failed to map assignment data: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
        UPDATE job_assignments
        SET status = $1, data = $2, completed_at = $3, last_updated_at = $4, last_updated_by = $5
        WHERE assignment_id = $6 AND tenant_id = $7 AND status = $8
        RETURNING job_id;
    `
	var jobID string
	err = tx.QueryRow(ctx, updateQuery,
		string(params.ToStatus),
		m.Data,
		params.CompletedAt,
		params.UpdatedAt,
		params.UpdatedBy,
		params.AssignmentID,
		params.TenantID,
		string(params.FromStatus),
	).Scan(&jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row either does not exist or its status moved underneath us.
			var exists bool
			checkErr := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM job_assignments WHERE assignment_id = $1 AND tenant_id = $2);`,
				params.AssignmentID, params.TenantID,
			).Scan(&exists)
			if checkErr != nil {
				return fmt.Errorf("failed to check assignment existence: %w", checkErr)
			}
			if !exists {
				return fmt.Errorf("assignment not found: %w", apperrors.ErrNotFound)
			}
			return fmt.Errorf("assignment status changed concurrently: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to apply assignment transition: %w", err)
	}

	if params.CascadeJob {
		var openCount int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM job_assignments WHERE tenant_id = $1 AND job_id = $2 AND status IN ($3, $4);`,
			params.TenantID, jobID, string(domain.AssignmentAssigned), string(domain.AssignmentInProgress),
		).Scan(&openCount)
		if err != nil {
			return fmt.Errorf("failed to count open assignments for job %s: %w", jobID, err)
		}
		if openCount == 0 {
			cmdTag, err := tx.Exec(ctx, `
                UPDATE jobs
                SET status = $1, completed_at = $2, last_updated_at = $3, last_updated_by = $4
                WHERE job_id = $5 AND tenant_id = $6 AND status NOT IN ($7, $8) AND deleted_at IS NULL;
            `,
				string(domain.JobCompleted),
				params.CompletedAt,
				params.UpdatedAt,
				params.UpdatedBy,
				jobID,
				params.TenantID,
				string(domain.JobCompleted),
				string(domain.JobCancelled),
			)
			if err != nil {
				return fmt.Errorf("failed to cascade job completion for job %s: %w", jobID, err)
			}
			if cmdTag.RowsAffected() > 0 {
				metrics.JobCascadeCompletionsTotal.Inc()
			}
		}
	}

	if err := insertAuditLogTx(ctx, tx, params.Audit); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	metrics.AssignmentTransitionsTotal.WithLabelValues(string(params.FromStatus), string(params.ToStatus)).Inc()
	return nil
}

func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM job_assignments WHERE assignment_id = $1 AND tenant_id = $2;`
	m, err := scanAssignment(r.Pool.QueryRow(ctx, query, assignmentID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment by ID %s: %w", assignmentID, err)
	}
	d, err := mapping.ToDomainAssignment(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxAssignmentRepository) ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error) {
	query := `
        SELECT ` + assignmentColumns + `
        FROM job_assignments
        WHERE tenant_id = $1 AND job_id = $2
        ORDER BY assigned_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments by job: %w", err)
	}
	defer rows.Close()

	modelAssignments := []models.JobAssignment{}
	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		modelAssignments = append(modelAssignments, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", rows.Err())
	}

	return mapping.ToDomainAssignmentSlice(modelAssignments)
}

// ListAssignmentsByWorker retrieves a paginated list of a worker's assignments
// using token-based pagination.
func (r *PgxAssignmentRepository) ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, limit int, nextToken *string) ([]domain.JobAssignment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + assignmentColumns + ` FROM job_assignments`
	filterClause := `WHERE tenant_id = $1 AND worker_id = $2`
	orderByClause := `ORDER BY created_at DESC, assignment_id DESC`
	args := []interface{}{tenantID, workerID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastAssignmentID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastAssignmentID)
		filterClause += ` AND (created_at, assignment_id) < ($3, $4)`
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + fmt.Sprintf(" LIMIT $%d;", len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query assignments for worker "+workerID, err)
	}
	defer rows.Close()

	modelAssignments := make([]models.JobAssignment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAssignment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan assignment row for worker "+workerID, scanErr)
		}
		modelAssignments = append(modelAssignments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating assignment rows for worker "+workerID, err)
	}

	var nextTokenVal *string
	results := modelAssignments
	if len(modelAssignments) > limit {
		last := modelAssignments[limit-1]
		newToken := pagination.EncodeToken(last.CreatedAt, last.AssignmentID)
		nextTokenVal = &newToken
		results = modelAssignments[:limit]
	}

	domainAssignments, err := mapping.ToDomainAssignmentSlice(results)
	if err != nil {
		return nil, nil, err
	}

	return domainAssignments, nextTokenVal, nil
}

func (r *PgxAssignmentRepository) CountOpenAssignmentsByWorker(ctx context.Context, tenantID, workerID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_assignments WHERE tenant_id = $1 AND worker_id = $2 AND status IN ($3, $4);`,
		tenantID, workerID, string(domain.AssignmentAssigned), string(domain.AssignmentInProgress),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open assignments for worker %s: %w", workerID, err)
	}
	return count, nil
}

func (r *PgxAssignmentRepository) CountOpenAssignmentsByJob(ctx context.Context, tenantID, jobID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_assignments WHERE tenant_id = $1 AND job_id = $2 AND status IN ($3, $4);`,
		tenantID, jobID, string(domain.AssignmentAssigned), string(domain.AssignmentInProgress),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open assignments for job %s: %w", jobID, err)
	}
	return count, nil
}

func (r *PgxAssignmentRepository) UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID, notes string, updatedBy string, updatedAt time.Time, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE job_assignments
        SET notes = $1, last_updated_at = $2, last_updated_by = $3
        WHERE assignment_id = $4 AND tenant_id = $5;
    `
	cmdTag, err := tx.Exec(ctx, query, notes, updatedAt, updatedBy, assignmentID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update assignment notes: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment not found: %w", apperrors.ErrNotFound)
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAssignmentRepository) DeleteAssignment(ctx context.Context, tenantID, assignmentID string, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM job_assignments WHERE assignment_id = $1 AND tenant_id = $2;`, assignmentID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment %s: %w", assignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment not found: %w", apperrors.ErrNotFound)
	}

	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
