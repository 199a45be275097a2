package models

import "time"

// Location maps to the locations table.
type Location struct {
	LocationID string `db:"location_id"`
	TenantID   string `db:"tenant_id"`
	Name       string `db:"name"`
	Address    string `db:"address"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
