package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// CreateAssignmentRequest defines data for assigning a worker to a job.
type CreateAssignmentRequest struct {
	JobID    string `json:"jobID" binding:"required"`
	WorkerID string `json:"workerID" binding:"required"`
	Role     string `json:"role"`
	Notes    string `json:"notes"`
}

// UpdateAssignmentNotesRequest replaces the assignment's free-form notes.
// An empty string clears them.
type UpdateAssignmentNotesRequest struct {
	Notes string `json:"notes"`
}

// CompleteAssignmentRequest carries optional completion details that are
// merged into the assignment's data.
type CompleteAssignmentRequest struct {
	Data map[string]any `json:"data"`
}

// CancelAssignmentRequest carries the mandatory cancellation reason.
type CancelAssignmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListAssignmentsParams defines query parameters for listing a worker's assignments.
type ListAssignmentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// AssignmentResponse defines data returned for a job assignment.
type AssignmentResponse struct {
	AssignmentID string         `json:"assignmentID"`
	TenantID     string         `json:"tenantID"`
	JobID        string         `json:"jobID"`
	WorkerID     string         `json:"workerID"`
	Role         string         `json:"role"`
	Status       string         `json:"status"`
	AssignedAt   time.Time      `json:"assignedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	CreatedBy    string         `json:"createdBy"`
}

// ToAssignmentResponse converts domain.JobAssignment to DTO.
func ToAssignmentResponse(a *domain.JobAssignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		TenantID:     a.TenantID,
		JobID:        a.JobID,
		WorkerID:     a.WorkerID,
		Role:         a.Role,
		Status:       string(a.Status),
		AssignedAt:   a.AssignedAt,
		CompletedAt:  a.CompletedAt,
		Notes:        a.Notes,
		Data:         a.Data,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}

// ListAssignmentsResponse wraps a page of assignments with the next page token.
type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToListAssignmentsResponse converts a page of domain.JobAssignment to DTO.
func ToListAssignmentsResponse(as []domain.JobAssignment, nextToken *string) ListAssignmentsResponse {
	list := make([]AssignmentResponse, len(as))
	for i, a := range as {
		list[i] = ToAssignmentResponse(&a)
	}
	return ListAssignmentsResponse{Assignments: list, NextToken: nextToken}
}
