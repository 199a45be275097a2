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
	ErrDuplicateAssignment        = errors.New("worker is already assigned to this job")
	ErrWorkerUnavailable          = errors.New("worker is not available for assignment")
	ErrTooManyActiveAssignments   = errors.New("worker has reached the concurrent assignment limit")
	ErrJobNotAcceptingAssignments = errors.New("job is not accepting assignments")
	ErrCannotDeleteCompleted      = errors.New("completed assignments cannot be deleted")
	ErrInvalidTransition          = errors.New("invalid assignment transition")
)

// DefaultMaxActiveAssignmentsPerWorker caps how many open assignments a
// single worker may hold at once when no override is configured.
const DefaultMaxActiveAssignmentsPerWorker = 5

// assignmentService drives the assignment status machine. Transitions are
// applied by the repository under an optimistic status guard in a single
// transaction, including the job completion cascade and the audit entry.
type assignmentService struct {
	BaseService
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	jobRepo        portsrepo.JobRepositoryFacade
	workerRepo     portsrepo.WorkerReader
	maxActive      int
}

// NewAssignmentService creates a new AssignmentService. maxActivePerWorker
// caps a worker's concurrent open assignments; values below one fall back to
// the default.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, jobRepo portsrepo.JobRepositoryFacade, workerRepo portsrepo.WorkerReader, tenantSvc portssvc.TenantSvcFacade, maxActivePerWorker int) portssvc.AssignmentSvcFacade {
	if maxActivePerWorker < 1 {
		maxActivePerWorker = DefaultMaxActiveAssignmentsPerWorker
	}
	return &assignmentService{
		BaseService:    BaseService{TenantAuthorizer: tenantSvc},
		assignmentRepo: assignmentRepo,
		jobRepo:        jobRepo,
		workerRepo:     workerRepo,
		maxActive:      maxActivePerWorker,
	}
}

// Ensure assignmentService implements the portssvc.AssignmentSvcFacade interface
var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) GetAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error) {
	return s.assignmentRepo.FindAssignmentByID(ctx, tenantID, assignmentID)
}

func (s *assignmentService) ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error) {
	return s.assignmentRepo.ListAssignmentsByJob(ctx, tenantID, jobID)
}

func (s *assignmentService) ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error) {
	assignments, nextToken, err := s.assignmentRepo.ListAssignmentsByWorker(ctx, tenantID, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListAssignmentsResponse(assignments, nextToken)
	return &resp, nil
}

// CreateAssignment assigns a worker to a job. The database's unique index on
// (job_id, worker_id) is the final arbiter against double assignment; the
// availability and cap checks here catch the common cases early.
func (s *assignmentService) CreateAssignment(ctx context.Context, tenantID string, req dto.CreateAssignmentRequest, creatorUserID string) (*domain.JobAssignment, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, tenantID, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsAvailable() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrResourceUnavailable, ErrWorkerUnavailable)
	}

	openCount, err := s.assignmentRepo.CountOpenAssignmentsByWorker(ctx, tenantID, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if openCount >= s.maxActive {
		return nil, fmt.Errorf("%w: %s (%d of %d)", apperrors.ErrResourceUnavailable, ErrTooManyActiveAssignments, openCount, s.maxActive)
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrJobNotAcceptingAssignments, job.Status)
	}

	now := time.Now()
	assignment := domain.JobAssignment{
		AssignmentID: uuid.NewString(),
		TenantID:     tenantID,
		JobID:        req.JobID,
		WorkerID:     req.WorkerID,
		Role:         req.Role,
		Status:       domain.AssignmentAssigned,
		AssignedAt:   now,
		Notes:        req.Notes,
		Data:         map[string]any{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	audit := s.auditEntry(tenantID, creatorUserID, "assignment.created", assignment.AssignmentID, map[string]any{
		"job_id":    assignment.JobID,
		"worker_id": assignment.WorkerID,
	})

	if err := s.assignmentRepo.SaveAssignment(ctx, assignment, audit); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", err, ErrDuplicateAssignment)
		}
		s.LogError(ctx, err, "Failed to save assignment")
		return nil, err
	}

	s.LogInfo(ctx, "Assignment created", "assignment_id", assignment.AssignmentID, "job_id", req.JobID, "worker_id", req.WorkerID, "tenant_id", tenantID)
	return &assignment, nil
}

// StartAssignment moves an assignment from assigned to in_progress. Starting
// the first assignment of a pending job activates the job.
func (s *assignmentService) StartAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error) {
	assignment, err := s.transition(ctx, tenantID, assignmentID, domain.AssignmentInProgress, requestingUserID, nil, false)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, assignment.JobID)
	if err == nil && job.Status == domain.JobPending {
		if err := s.jobRepo.UpdateJobStatus(ctx, tenantID, job.JobID, domain.JobActive, nil, requestingUserID, time.Now()); err != nil {
			s.LogError(ctx, err, "Failed to activate job", "job_id", job.JobID)
		}
	}

	return assignment, nil
}

// CompleteAssignment moves an assignment from in_progress to completed,
// merging any supplied details into its data. When it was the job's last open
// assignment, the job completes in the same transaction.
func (s *assignmentService) CompleteAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CompleteAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error) {
	return s.transition(ctx, tenantID, assignmentID, domain.AssignmentCompleted, requestingUserID, req.Data, true)
}

// CancelAssignment moves an open assignment to cancelled, stamping the reason
// into the assignment's data map.
func (s *assignmentService) CancelAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CancelAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	extra := map[string]any{
		domain.DataKeyCancelledAt:        time.Now().Format(time.RFC3339),
		domain.DataKeyCancelledBy:        requestingUserID,
		domain.DataKeyCancellationReason: req.Reason,
	}
	return s.transition(ctx, tenantID, assignmentID, domain.AssignmentCancelled, requestingUserID, extra, false)
}

// ReassignAssignment re-queues a cancelled assignment, subject to the same
// worker availability and cap checks as a fresh assignment.
func (s *assignmentService) ReassignAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.Status.CanTransitionTo(domain.AssignmentAssigned) {
		return nil, s.invalidTransition(assignment.Status, domain.AssignmentAssigned)
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, tenantID, assignment.WorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsAvailable() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrResourceUnavailable, ErrWorkerUnavailable)
	}

	openCount, err := s.assignmentRepo.CountOpenAssignmentsByWorker(ctx, tenantID, assignment.WorkerID)
	if err != nil {
		return nil, err
	}
	if openCount >= s.maxActive {
		return nil, fmt.Errorf("%w: %s (%d of %d)", apperrors.ErrResourceUnavailable, ErrTooManyActiveAssignments, openCount, s.maxActive)
	}

	job, err := s.jobRepo.FindJobByID(ctx, tenantID, assignment.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrJobNotAcceptingAssignments, job.Status)
	}

	return s.applyTransition(ctx, assignment, domain.AssignmentAssigned, requestingUserID, nil, false)
}

// DeleteAssignment removes an assignment for good. Completed assignments are
// part of the job's record and cannot be deleted.
// UpdateAssignmentNotes replaces the assignment's free-form notes. Notes are
// operational annotations, so completed assignments accept them too.
func (s *assignmentService) UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID string, req dto.UpdateAssignmentNotesRequest, requestingUserID string) (*domain.JobAssignment, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleMember); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := s.auditEntry(tenantID, requestingUserID, "assignment.notes_updated", assignmentID, map[string]any{
		"job_id":    assignment.JobID,
		"worker_id": assignment.WorkerID,
		"notes":     req.Notes,
	})

	if err := s.assignmentRepo.UpdateAssignmentNotes(ctx, tenantID, assignmentID, req.Notes, requestingUserID, now, audit); err != nil {
		s.LogError(ctx, err, "Failed to update assignment notes", "assignment_id", assignmentID)
		return nil, err
	}

	updated := *assignment
	updated.Notes = req.Notes
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = requestingUserID

	return &updated, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return err
	}

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, tenantID, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status == domain.AssignmentCompleted {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrCannotDeleteCompleted)
	}

	audit := s.auditEntry(tenantID, requestingUserID, "assignment.deleted", assignmentID, map[string]any{
		"job_id":    assignment.JobID,
		"worker_id": assignment.WorkerID,
		"status":    string(assignment.Status),
	})

	if err := s.assignmentRepo.DeleteAssignment(ctx, tenantID, assignmentID, audit); err != nil {
		s.LogError(ctx, err, "Failed to delete assignment")
		return err
	}

	s.LogInfo(ctx, "Assignment deleted", "assignment_id", assignmentID, "tenant_id", tenantID)
	return nil
}

// transition loads the assignment, validates the edge and applies it.
func (s *assignmentService) transition(ctx context.Context, tenantID, assignmentID string, target domain.AssignmentStatus, requestingUserID string, extraData map[string]any, cascadeJob bool) (*domain.JobAssignment, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleMember); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.Status.CanTransitionTo(target) {
		return nil, s.invalidTransition(assignment.Status, target)
	}

	return s.applyTransition(ctx, assignment, target, requestingUserID, extraData, cascadeJob)
}

// applyTransition hands the validated edge to the repository. The status read
// above becomes the optimistic guard, so a concurrent transition surfaces as
// apperrors.ErrConflict rather than a lost update.
func (s *assignmentService) applyTransition(ctx context.Context, assignment *domain.JobAssignment, target domain.AssignmentStatus, requestingUserID string, extraData map[string]any, cascadeJob bool) (*domain.JobAssignment, error) {
	now := time.Now()

	data := assignment.Data
	if extraData != nil {
		data = assignment.MergedData(extraData)
	}

	var completedAt *time.Time
	if target == domain.AssignmentCompleted {
		completedAt = assignment.CompletedAt
		if completedAt == nil {
			completedAt = &now
		}
	}

	audit := s.auditEntry(assignment.TenantID, requestingUserID, "assignment."+string(target), assignment.AssignmentID, map[string]any{
		"from_status": string(assignment.Status),
		"to_status":   string(target),
		"job_id":      assignment.JobID,
	})

	params := portsrepo.AssignmentTransitionParams{
		TenantID:     assignment.TenantID,
		AssignmentID: assignment.AssignmentID,
		FromStatus:   assignment.Status,
		ToStatus:     target,
		Data:         data,
		CompletedAt:  completedAt,
		CascadeJob:   cascadeJob,
		Audit:        audit,
		UpdatedBy:    requestingUserID,
		UpdatedAt:    now,
	}

	if err := s.assignmentRepo.ApplyAssignmentTransition(ctx, params); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to apply assignment transition", "assignment_id", assignment.AssignmentID, "to_status", string(target))
		return nil, err
	}

	updated := *assignment
	updated.Status = target
	updated.Data = data
	updated.CompletedAt = completedAt
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Assignment transitioned", "assignment_id", assignment.AssignmentID, "from_status", string(assignment.Status), "to_status", string(target), "tenant_id", assignment.TenantID)
	return &updated, nil
}

func (s *assignmentService) invalidTransition(from, to domain.AssignmentStatus) error {
	return fmt.Errorf("%w: %s: cannot change status from %s to %s", apperrors.ErrConflict, ErrInvalidTransition, from, to)
}

func (s *assignmentService) auditEntry(tenantID, userID, action, entityID string, newValues map[string]any) domain.AuditLog {
	return domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityAssignment,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
}
