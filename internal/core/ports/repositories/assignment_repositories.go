package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// AssignmentTransitionParams carries everything a status transition needs so
// the repository can apply it atomically: the optimistic status guard, the
// merged data map, the optional job completion cascade and the audit entry.
type AssignmentTransitionParams struct {
	TenantID     string
	AssignmentID string
	FromStatus   domain.AssignmentStatus
	ToStatus     domain.AssignmentStatus
	Data         map[string]any
	CompletedAt  *time.Time
	CascadeJob   bool
	Audit        domain.AuditLog
	UpdatedBy    string
	UpdatedAt    time.Time
}

// AssignmentReader defines read operations for job assignment data
type AssignmentReader interface {
	// FindAssignmentByID retrieves a specific assignment by ID, scoped to a tenant.
	FindAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error)

	// ListAssignmentsByJob retrieves all assignments for a job.
	ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error)

	// ListAssignmentsByWorker retrieves a paginated list of a worker's
	// assignments using token-based pagination. It returns the assignments,
	// a token for the next page, and an error.
	ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, limit int, nextToken *string) ([]domain.JobAssignment, *string, error)

	// CountOpenAssignmentsByWorker counts a worker's assignments in the
	// assigned or in_progress status.
	CountOpenAssignmentsByWorker(ctx context.Context, tenantID, workerID string) (int, error)

	// CountOpenAssignmentsByJob counts a job's assignments in the assigned
	// or in_progress status.
	CountOpenAssignmentsByJob(ctx context.Context, tenantID, jobID string) (int, error)
}

// AssignmentWriter defines write operations for job assignment data
type AssignmentWriter interface {
	// SaveAssignment persists a new assignment together with its audit
	// entry. The (job_id, worker_id) unique constraint surfaces as
	// apperrors.ErrDuplicate.
	SaveAssignment(ctx context.Context, assignment domain.JobAssignment, audit domain.AuditLog) error

	// ApplyAssignmentTransition applies a status transition atomically. The
	// update is guarded on the expected current status; a concurrent change
	// surfaces as apperrors.ErrConflict. When params.CascadeJob is set and
	// this was the job's last open assignment, the job is completed in the
	// same transaction.
	ApplyAssignmentTransition(ctx context.Context, params AssignmentTransitionParams) error

	// UpdateAssignmentNotes updates the free-form notes of an assignment and
	// records the audit entry in the same transaction.
	UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID, notes string, updatedBy string, updatedAt time.Time, audit domain.AuditLog) error

	// DeleteAssignment removes an assignment row and records the audit
	// entry in the same transaction.
	DeleteAssignment(ctx context.Context, tenantID, assignmentID string, audit domain.AuditLog) error
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
