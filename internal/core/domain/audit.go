package domain

import "time"

// EntityKind tags which entity an audit record (or any loose reference)
// points at. A typed (kind, id) pair replaces untyped polymorphic columns.
type EntityKind string

const (
	EntityTenant     EntityKind = "tenant"
	EntityUser       EntityKind = "user"
	EntityWorker     EntityKind = "worker"
	EntityLocation   EntityKind = "location"
	EntityJob        EntityKind = "job"
	EntityAsset      EntityKind = "asset"
	EntityAssignment EntityKind = "job_assignment"
	EntityQuota      EntityKind = "tenant_quota"
	EntityAuditLog   EntityKind = "audit_log"
)

// AuditLog is an append-only record of a mutating action. Audit rows are
// never updated; deleting one requires ADMIN and itself produces a new
// audit entry documenting the deletion.
type AuditLog struct {
	AuditID    string         `json:"auditID"` // Primary Key (UUID)
	TenantID   string         `json:"tenantID"`
	UserID     string         `json:"userID"`
	Action     string         `json:"action"` // e.g. "job_assignment.transition"
	EntityKind EntityKind     `json:"entityKind"`
	EntityID   string         `json:"entityID"`
	OldValues  map[string]any `json:"oldValues,omitempty"`
	NewValues  map[string]any `json:"newValues,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
