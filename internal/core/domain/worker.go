package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus indicates whether a worker can take on work.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "active"
	EmploymentInactive   EmploymentStatus = "inactive"
	EmploymentTerminated EmploymentStatus = "terminated"
)

// IsValid reports whether the status is one of the known employment statuses.
func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentActive, EmploymentInactive, EmploymentTerminated:
		return true
	}
	return false
}

// Worker is a member of a tenant's workforce, backed by exactly one user
// account. Workers are soft-deleted only, to preserve assignment history.
type Worker struct {
	WorkerID         string           `json:"workerID"` // Primary Key (UUID)
	TenantID         string           `json:"tenantID"`
	UserID           string           `json:"userID"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus"`
	HireDate         time.Time        `json:"hireDate"`
	HourlyRate       decimal.Decimal  `json:"hourlyRate"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAvailable reports whether the worker can receive new assignments.
func (w Worker) IsAvailable() bool {
	return w.EmploymentStatus == EmploymentActive && w.DeletedAt == nil
}
