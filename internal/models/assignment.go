package models

import "time"

// JobAssignment maps to the job_assignments table. Data is the raw JSONB
// payload; mapping converts it to and from the domain map.
type JobAssignment struct {
	AssignmentID string     `db:"assignment_id"`
	TenantID     string     `db:"tenant_id"`
	JobID        string     `db:"job_id"`
	WorkerID     string     `db:"worker_id"`
	Role         string     `db:"role"`
	Status       string     `db:"status"`
	AssignedAt   time.Time  `db:"assigned_at"`
	CompletedAt  *time.Time `db:"completed_at"`
	Notes        string     `db:"notes"`
	Data         []byte     `db:"data"`
	AuditFields
}
