package models

import "time"

// Asset maps to the assets table.
type Asset struct {
	AssetID          string  `db:"asset_id"`
	TenantID         string  `db:"tenant_id"`
	LocationID       *string `db:"location_id"`
	Name             string  `db:"name"`
	AssetTag         string  `db:"asset_tag"`
	Status           string  `db:"status"`
	AssignedWorkerID *string `db:"assigned_worker_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
