package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// CreateJobRequest defines data for creating a new job.
type CreateJobRequest struct {
	LocationID     string     `json:"locationID" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	ScheduledStart *time.Time `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
}

// UpdateJobRequest defines the data allowed for updating a job.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateJobRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	ScheduledStart *time.Time `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
}

// ListJobsParams defines query parameters for listing jobs.
type ListJobsParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=pending active completed cancelled"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// JobResponse defines data returned for a job.
type JobResponse struct {
	JobID          string     `json:"jobID"`
	TenantID       string     `json:"tenantID"`
	LocationID     string     `json:"locationID"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy"`
}

// ToJobResponse converts domain.Job to DTO.
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		JobID:          j.JobID,
		TenantID:       j.TenantID,
		LocationID:     j.LocationID,
		Title:          j.Title,
		Description:    j.Description,
		Status:         string(j.Status),
		ScheduledStart: j.ScheduledStart,
		ScheduledEnd:   j.ScheduledEnd,
		CompletedAt:    j.CompletedAt,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
	}
}

// ListJobsResponse wraps a page of jobs with the token for the next page.
type ListJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ToListJobsResponse converts a page of domain.Job to DTO.
func ToListJobsResponse(js []domain.Job, nextToken *string) ListJobsResponse {
	list := make([]JobResponse, len(js))
	for i, j := range js {
		list[i] = ToJobResponse(&j)
	}
	return ListJobsResponse{Jobs: list, NextToken: nextToken}
}
