package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// JobReader defines read operations for job data
type JobReader interface {
	// FindJobByID retrieves a specific job by ID, scoped to a tenant.
	FindJobByID(ctx context.Context, tenantID, jobID string) (*domain.Job, error)

	// ListJobs retrieves a paginated list of jobs for a tenant using
	// token-based pagination. It returns the jobs, a token for the next
	// page, and an error.
	ListJobs(ctx context.Context, tenantID string, statusFilter *domain.JobStatus, limit int, nextToken *string) ([]domain.Job, *string, error)

	// ListJobsByLocation retrieves jobs scheduled at a given location.
	ListJobsByLocation(ctx context.Context, tenantID, locationID string, limit int, offset int) ([]domain.Job, error)
}

// JobWriter defines write operations for job data
type JobWriter interface {
	// SaveJob persists a new job.
	SaveJob(ctx context.Context, job domain.Job) error

	// UpdateJob updates an existing job's details.
	UpdateJob(ctx context.Context, job domain.Job) error

	// UpdateJobStatus updates only the status and completion timestamp of a job.
	UpdateJobStatus(ctx context.Context, tenantID, jobID string, status domain.JobStatus, completedAt *time.Time, updatedBy string, updatedAt time.Time) error
}

// JobLifecycleManager defines operations for managing job lifecycle
type JobLifecycleManager interface {
	// MarkJobDeleted marks a job as deleted (soft delete).
	MarkJobDeleted(ctx context.Context, tenantID, jobID string, deletedAt time.Time, deletedBy string) error
}

// JobRepositoryFacade combines all job-related repository interfaces
type JobRepositoryFacade interface {
	JobReader
	JobWriter
	JobLifecycleManager
}
