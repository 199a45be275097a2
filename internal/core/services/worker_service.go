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
	ErrWorkerHasOpenAssignments = errors.New("worker has open assignments")
)

// workerService manages the workforce roster.
type workerService struct {
	BaseService
	workerRepo     portsrepo.WorkerRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	assignmentRepo portsrepo.AssignmentReader
	quotaSvc       portssvc.QuotaSvcFacade
	auditSvc       portssvc.AuditSvcFacade
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(workerRepo portsrepo.WorkerRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, assignmentRepo portsrepo.AssignmentReader, tenantSvc portssvc.TenantSvcFacade, quotaSvc portssvc.QuotaSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.WorkerSvcFacade {
	return &workerService{
		BaseService:    BaseService{TenantAuthorizer: tenantSvc},
		workerRepo:     workerRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		quotaSvc:       quotaSvc,
		auditSvc:       auditSvc,
	}
}

// Ensure workerService implements the portssvc.WorkerSvcFacade interface
var _ portssvc.WorkerSvcFacade = (*workerService)(nil)

func (s *workerService) GetWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error) {
	return s.workerRepo.FindWorkerByID(ctx, tenantID, workerID)
}

func (s *workerService) ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error) {
	return s.workerRepo.ListWorkers(ctx, tenantID, limit, offset)
}

// CreateWorker creates a worker profile for an existing user, claiming one
// unit of the tenant's worker quota.
func (s *workerService) CreateWorker(ctx context.Context, tenantID string, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	// The worker must map to a real user in the same tenant.
	if _, err := s.userRepo.FindUserByID(ctx, tenantID, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s not found in tenant", apperrors.ErrValidation, req.UserID)
		}
		return nil, err
	}

	if _, err := s.quotaSvc.ConsumeQuota(ctx, tenantID, domain.QuotaWorkers, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	worker := domain.Worker{
		WorkerID:         uuid.NewString(),
		TenantID:         tenantID,
		UserID:           req.UserID,
		EmploymentStatus: domain.EmploymentActive,
		HireDate:         req.HireDate,
		HourlyRate:       req.HourlyRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workerRepo.SaveWorker(ctx, worker); err != nil {
		s.releaseQuota(ctx, tenantID, creatorUserID)
		s.LogError(ctx, err, "Failed to save worker")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, creatorUserID, "worker.created", worker.WorkerID, map[string]any{
		"user_id": worker.UserID,
	})

	s.LogInfo(ctx, "Worker created", "worker_id", worker.WorkerID, "tenant_id", tenantID)
	return &worker, nil
}

func (s *workerService) UpdateWorker(ctx context.Context, tenantID, workerID string, req dto.UpdateWorkerRequest, requestingUserID string) (*domain.Worker, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, tenantID, workerID)
	if err != nil {
		return nil, err
	}

	if req.EmploymentStatus != nil {
		status := domain.EmploymentStatus(*req.EmploymentStatus)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid employment status %q", apperrors.ErrValidation, *req.EmploymentStatus)
		}
		worker.EmploymentStatus = status
	}
	if req.HourlyRate != nil {
		worker.HourlyRate = *req.HourlyRate
	}
	worker.LastUpdatedAt = time.Now()
	worker.LastUpdatedBy = requestingUserID

	if err := s.workerRepo.UpdateWorker(ctx, *worker); err != nil {
		s.LogError(ctx, err, "Failed to update worker")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "worker.updated", workerID, map[string]any{
		"employment_status": string(worker.EmploymentStatus),
	})

	return worker, nil
}

// DeactivateWorker soft deletes a worker. Workers with open assignments
// cannot be removed; their assignments must be completed or cancelled first.
func (s *workerService) DeactivateWorker(ctx context.Context, tenantID, workerID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return err
	}

	openCount, err := s.assignmentRepo.CountOpenAssignmentsByWorker(ctx, tenantID, workerID)
	if err != nil {
		return err
	}
	if openCount > 0 {
		return fmt.Errorf("%w: %s (%d open)", apperrors.ErrConflict, ErrWorkerHasOpenAssignments, openCount)
	}

	now := time.Now()
	if err := s.workerRepo.MarkWorkerDeleted(ctx, tenantID, workerID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate worker")
		return err
	}

	s.releaseQuota(ctx, tenantID, requestingUserID)
	s.recordAudit(ctx, tenantID, requestingUserID, "worker.deactivated", workerID, nil)
	s.LogInfo(ctx, "Worker deactivated", "worker_id", workerID, "tenant_id", tenantID)
	return nil
}

func (s *workerService) releaseQuota(ctx context.Context, tenantID, userID string) {
	if err := s.quotaSvc.ReleaseQuota(ctx, tenantID, domain.QuotaWorkers, userID); err != nil {
		s.LogError(ctx, err, "Failed to release worker quota")
	}
}

func (s *workerService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityWorker,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
