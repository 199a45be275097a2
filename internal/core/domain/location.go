package domain

import "time"

// Location is a physical site where jobs take place and assets live.
type Location struct {
	LocationID string `json:"locationID"` // Primary Key (UUID)
	TenantID   string `json:"tenantID"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
