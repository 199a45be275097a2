package domain

import "time"

// AssignmentStatus indicates the state of a worker-to-job assignment.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

// assignmentTransitions is the permitted-edges table of the assignment status
// machine. completed is terminal; cancelled assignments may be re-queued.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentAssigned:   {AssignmentInProgress, AssignmentCancelled},
	AssignmentInProgress: {AssignmentCompleted, AssignmentCancelled},
	AssignmentCompleted:  {},
	AssignmentCancelled:  {AssignmentAssigned},
}

// IsValid reports whether the status is one of the known assignment statuses.
func (s AssignmentStatus) IsValid() bool {
	_, ok := assignmentTransitions[s]
	return ok
}

// IsOpen reports whether the assignment still counts against the parent job's
// completion check and the worker's concurrency cap.
func (s AssignmentStatus) IsOpen() bool {
	return s == AssignmentAssigned || s == AssignmentInProgress
}

// CanTransitionTo reports whether the edge from s to target is permitted.
func (s AssignmentStatus) CanTransitionTo(target AssignmentStatus) bool {
	for _, t := range assignmentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Keys stamped into an assignment's data map on cancellation.
const (
	DataKeyCancelledAt        = "cancelled_at"
	DataKeyCancelledBy        = "cancelled_by"
	DataKeyCancellationReason = "cancellation_reason"
)

// JobAssignment joins a worker to a job. At most one assignment may exist per
// (job, worker) pair; re-queueing a cancelled assignment reuses the row.
type JobAssignment struct {
	AssignmentID string           `json:"assignmentID"` // Primary Key (UUID)
	TenantID     string           `json:"tenantID"`
	JobID        string           `json:"jobID"`
	WorkerID     string           `json:"workerID"`
	Role         string           `json:"role"`
	Status       AssignmentStatus `json:"status"`
	AssignedAt   time.Time        `json:"assignedAt"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
	Notes        string           `json:"notes"`
	Data         map[string]any   `json:"data"`
	AuditFields
}

// MergedData returns a copy of the assignment's data with extra merged in.
// Keys in extra win over existing keys.
func (a JobAssignment) MergedData(extra map[string]any) map[string]any {
	merged := make(map[string]any, len(a.Data)+len(extra))
	for k, v := range a.Data {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
