package models

import "time"

// AuditLog maps to the audit_logs table. Value columns are raw JSONB.
type AuditLog struct {
	AuditID    string    `db:"audit_id"`
	TenantID   string    `db:"tenant_id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	EntityKind string    `db:"entity_kind"`
	EntityID   string    `db:"entity_id"`
	OldValues  []byte    `db:"old_values"`
	NewValues  []byte    `db:"new_values"`
	IPAddress  string    `db:"ip_address"`
	UserAgent  string    `db:"user_agent"`
	Metadata   []byte    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}
