package domain

import "time"

// AssetStatus indicates the state of a physical asset.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetAssigned    AssetStatus = "assigned"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

// IsValid reports whether the status is one of the known asset statuses.
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetAvailable, AssetAssigned, AssetMaintenance, AssetRetired:
		return true
	}
	return false
}

// Asset is a piece of tenant-owned equipment, optionally tied to a location
// and optionally checked out to a worker.
type Asset struct {
	AssetID          string      `json:"assetID"` // Primary Key (UUID)
	TenantID         string      `json:"tenantID"`
	LocationID       *string     `json:"locationID,omitempty"`
	Name             string      `json:"name"`
	AssetTag         string      `json:"assetTag"` // Human-readable inventory tag, unique per tenant
	Status           AssetStatus `json:"status"`
	AssignedWorkerID *string     `json:"assignedWorkerID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
