package models

import "time"

// Tenant maps to the tenants table.
type Tenant struct {
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	Slug     string `db:"slug"`
	Status   string `db:"status"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
