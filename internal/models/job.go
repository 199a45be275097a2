package models

import "time"

// Job maps to the jobs table.
type Job struct {
	JobID          string     `db:"job_id"`
	TenantID       string     `db:"tenant_id"`
	LocationID     string     `db:"location_id"`
	Title          string     `db:"title"`
	Description    string     `db:"description"`
	Status         string     `db:"status"`
	ScheduledStart *time.Time `db:"scheduled_start"`
	ScheduledEnd   *time.Time `db:"scheduled_end"`
	CompletedAt    *time.Time `db:"completed_at"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
