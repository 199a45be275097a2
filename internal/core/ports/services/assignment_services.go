package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// AssignmentReaderSvc defines read operations for job assignments
type AssignmentReaderSvc interface {
	// GetAssignmentByID retrieves a specific assignment by ID within a tenant.
	GetAssignmentByID(ctx context.Context, tenantID, assignmentID string) (*domain.JobAssignment, error)

	// ListAssignmentsByJob retrieves all assignments for a job.
	ListAssignmentsByJob(ctx context.Context, tenantID, jobID string) ([]domain.JobAssignment, error)

	// ListAssignmentsByWorker retrieves a paginated list of a worker's assignments.
	ListAssignmentsByWorker(ctx context.Context, tenantID, workerID string, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error)
}

// AssignmentWriterSvc defines write operations for job assignments
type AssignmentWriterSvc interface {
	// CreateAssignment assigns a worker to a job. The worker must be
	// available and under their concurrent assignment cap, and the job must
	// accept assignments.
	CreateAssignment(ctx context.Context, tenantID string, req dto.CreateAssignmentRequest, creatorUserID string) (*domain.JobAssignment, error)

	// StartAssignment moves an assignment from assigned to in_progress.
	StartAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error)

	// CompleteAssignment moves an assignment to completed, merging any
	// supplied details into its data. Completing the last open assignment
	// of a job completes the job as well.
	CompleteAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CompleteAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error)

	// CancelAssignment moves an open assignment to cancelled, recording the
	// mandatory reason.
	CancelAssignment(ctx context.Context, tenantID, assignmentID string, req dto.CancelAssignmentRequest, requestingUserID string) (*domain.JobAssignment, error)

	// ReassignAssignment moves a cancelled assignment back to assigned.
	ReassignAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) (*domain.JobAssignment, error)

	// UpdateAssignmentNotes replaces the assignment's free-form notes.
	UpdateAssignmentNotes(ctx context.Context, tenantID, assignmentID string, req dto.UpdateAssignmentNotesRequest, requestingUserID string) (*domain.JobAssignment, error)

	// DeleteAssignment removes a non-completed assignment.
	DeleteAssignment(ctx context.Context, tenantID, assignmentID string, requestingUserID string) error
}

// AssignmentSvcFacade combines all assignment-related service interfaces
type AssignmentSvcFacade interface {
	AssignmentReaderSvc
	AssignmentWriterSvc
}
