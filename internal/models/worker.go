package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker maps to the workers table.
type Worker struct {
	WorkerID         string          `db:"worker_id"`
	TenantID         string          `db:"tenant_id"`
	UserID           string          `db:"user_id"`
	EmploymentStatus string          `db:"employment_status"`
	HireDate         time.Time       `db:"hire_date"`
	HourlyRate       decimal.Decimal `db:"hourly_rate"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
