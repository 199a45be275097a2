package models

import "time"

// TenantQuota maps to the tenant_quotas table.
type TenantQuota struct {
	QuotaID      string    `db:"quota_id"`
	TenantID     string    `db:"tenant_id"`
	QuotaType    string    `db:"quota_type"`
	QuotaLimit   int64     `db:"quota_limit"`
	CurrentUsage int64     `db:"current_usage"`
	Status       string    `db:"status"`
	NextResetAt  time.Time `db:"next_reset_at"`
	AuditFields
}
