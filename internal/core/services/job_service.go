package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

var (
	ErrJobAlreadyFinished = errors.New("job has already finished")
	ErrJobHasOpenWork     = errors.New("job still has open assignments")
	ErrJobNotRemovable    = errors.New("active and completed jobs cannot be removed")
	ErrScheduleOutOfOrder = errors.New("scheduled end must be after scheduled start")
)

// jobService manages jobs and their lifecycle at the job level. Assignment
// driven transitions (activation, cascade completion) live in the assignment
// service and repository.
type jobService struct {
	BaseService
	jobRepo        portsrepo.JobRepositoryFacade
	locationRepo   portsrepo.LocationReader
	assignmentRepo portsrepo.AssignmentReader
	quotaSvc       portssvc.QuotaSvcFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo portsrepo.JobRepositoryFacade, locationRepo portsrepo.LocationReader, assignmentRepo portsrepo.AssignmentReader, tenantSvc portssvc.TenantSvcFacade, quotaSvc portssvc.QuotaSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.JobSvcFacade {
	return &jobService{
		BaseService:    BaseService{TenantAuthorizer: tenantSvc},
		jobRepo:        jobRepo,
		locationRepo:   locationRepo,
		assignmentRepo: assignmentRepo,
		quotaSvc:       quotaSvc,
		auditSvc:       auditSvc,
	}
}

// Ensure jobService implements the portssvc.JobSvcFacade interface
var _ portssvc.JobSvcFacade = (*jobService)(nil)

func (s *jobService) GetJobByID(ctx context.Context, tenantID, jobID string) (*domain.Job, error) {
	return s.jobRepo.FindJobByID(ctx, tenantID, jobID)
}

func (s *jobService) ListJobs(ctx context.Context, tenantID string, params dto.ListJobsParams) (*dto.ListJobsResponse, error) {
	var statusFilter *domain.JobStatus
	if params.Status != nil {
		status := domain.JobStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid job status %q", apperrors.ErrValidation, *params.Status)
		}
		statusFilter = &status
	}

	jobs, nextToken, err := s.jobRepo.ListJobs(ctx, tenantID, statusFilter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := dto.ToListJobsResponse(jobs, nextToken)
	return &resp, nil
}

// CreateJob creates a job in pending status, claiming one unit of the
// tenant's job quota. The target location must exist in the same tenant.
func (s *jobService) CreateJob(ctx context.Context, tenantID string, req dto.CreateJobRequest, creatorUserID string) (*domain.Job, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.ScheduledStart != nil && req.ScheduledEnd != nil && !req.ScheduledEnd.After(*req.ScheduledStart) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrScheduleOutOfOrder)
	}

	if _, err := s.locationRepo.FindLocationByID(ctx, tenantID, req.LocationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: location %s not found in tenant", apperrors.ErrValidation, req.LocationID)
		}
		return nil, err
	}

	if _, err := s.quotaSvc.ConsumeQuota(ctx, tenantID, domain.QuotaJobs, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	job := domain.Job{
		JobID:          uuid.NewString(),
		TenantID:       tenantID,
		LocationID:     req.LocationID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.JobPending,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		s.releaseQuota(ctx, tenantID, creatorUserID)
		s.LogError(ctx, err, "Failed to save job")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, creatorUserID, "job.created", job.JobID, map[string]any{
		"title":       job.Title,
		"location_id": job.LocationID,
	})

	s.LogInfo(ctx, "Job created", "job_id", job.JobID, "tenant_id", tenantID)
	return &job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, tenantID, jobID string, req dto.UpdateJobRequest, requestingUserID string) (*domain.Job, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrJobAlreadyFinished)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.ScheduledStart != nil {
		job.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		job.ScheduledEnd = req.ScheduledEnd
	}
	if job.ScheduledStart != nil && job.ScheduledEnd != nil && !job.ScheduledEnd.After(*job.ScheduledStart) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrScheduleOutOfOrder)
	}
	job.LastUpdatedAt = time.Now()
	job.LastUpdatedBy = requestingUserID

	if err := s.jobRepo.UpdateJob(ctx, *job); err != nil {
		s.LogError(ctx, err, "Failed to update job")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "job.updated", jobID, map[string]any{
		"title": job.Title,
	})

	return job, nil
}

// CancelJob cancels a pending or active job. Jobs with open assignments
// cannot be cancelled directly; cancel the assignments first.
func (s *jobService) CancelJob(ctx context.Context, tenantID, jobID string, requestingUserID string) (*domain.Job, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrJobAlreadyFinished)
	}

	openCount, err := s.assignmentRepo.CountOpenAssignmentsByJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if openCount > 0 {
		return nil, fmt.Errorf("%w: %s (%d open)", apperrors.ErrConflict, ErrJobHasOpenWork, openCount)
	}

	now := time.Now()
	previousStatus := job.Status
	if err := s.jobRepo.UpdateJobStatus(ctx, tenantID, jobID, domain.JobCancelled, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel job")
		return nil, err
	}
	job.Status = domain.JobCancelled
	job.LastUpdatedAt = now
	job.LastUpdatedBy = requestingUserID

	s.recordAudit(ctx, tenantID, requestingUserID, "job.cancelled", jobID, map[string]any{
		"previous_status": string(previousStatus),
	})

	s.LogInfo(ctx, "Job cancelled", "job_id", jobID, "tenant_id", tenantID)
	return job, nil
}

// DeactivateJob soft deletes a job and releases its quota unit. Active and
// completed jobs are kept for the record and cannot be removed.
func (s *jobService) DeactivateJob(ctx context.Context, tenantID, jobID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return err
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, jobID)
	if err != nil {
		return err
	}
	if job.Status == domain.JobActive || job.Status == domain.JobCompleted {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrJobNotRemovable)
	}

	now := time.Now()
	if err := s.jobRepo.MarkJobDeleted(ctx, tenantID, jobID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate job")
		return err
	}

	s.releaseQuota(ctx, tenantID, requestingUserID)
	s.recordAudit(ctx, tenantID, requestingUserID, "job.deactivated", jobID, nil)
	return nil
}

func (s *jobService) releaseQuota(ctx context.Context, tenantID, userID string) {
	if err := s.quotaSvc.ReleaseQuota(ctx, tenantID, domain.QuotaJobs, userID); err != nil {
		s.LogError(ctx, err, "Failed to release job quota")
	}
}

func (s *jobService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityJob,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
