package domain

import "time"

// JobStatus indicates the state of a job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobActive    JobStatus = "active"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

// IsValid reports whether the status is one of the known job statuses.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobPending, JobActive, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the job has reached a final state.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// Job is a unit of work at a location, staffed through job assignments.
// Active and completed jobs are immutable for deletion.
type Job struct {
	JobID          string     `json:"jobID"` // Primary Key (UUID)
	TenantID       string     `json:"tenantID"`
	LocationID     string     `json:"locationID"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         JobStatus  `json:"status"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
