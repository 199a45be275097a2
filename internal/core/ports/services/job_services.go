package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// JobReaderSvc defines read operations for job data
type JobReaderSvc interface {
	// GetJobByID retrieves a specific job by ID within a tenant.
	GetJobByID(ctx context.Context, tenantID, jobID string) (*domain.Job, error)

	// ListJobs retrieves a paginated list of jobs in a tenant.
	ListJobs(ctx context.Context, tenantID string, params dto.ListJobsParams) (*dto.ListJobsResponse, error)
}

// JobWriterSvc defines write operations for job data
type JobWriterSvc interface {
	// CreateJob persists a new job, consuming one unit of the tenant's
	// job quota.
	CreateJob(ctx context.Context, tenantID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error)

	// UpdateJob updates job details.
	UpdateJob(ctx context.Context, tenantID, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error)

	// CancelJob cancels a job that has not yet completed.
	CancelJob(ctx context.Context, tenantID, jobID string, requestingUserID string) (*domain.Job, error)

	// DeactivateJob marks a job as deleted and releases its quota unit.
	// Active and completed jobs cannot be removed.
	DeactivateJob(ctx context.Context, tenantID, jobID string, requestingUserID string) error
}

// JobSvcFacade combines all job-related service interfaces
type JobSvcFacade interface {
	JobReaderSvc
	JobWriterSvc
}
