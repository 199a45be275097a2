package domain

import "time"

// QuotaType identifies a metered resource type.
type QuotaType string

const (
	QuotaUsers   QuotaType = "users"
	QuotaWorkers QuotaType = "workers"
	QuotaJobs    QuotaType = "jobs"
	QuotaAssets  QuotaType = "assets"
)

// MeteredQuotaTypes lists every resource type subject to quota enforcement.
var MeteredQuotaTypes = []QuotaType{QuotaUsers, QuotaWorkers, QuotaJobs, QuotaAssets}

// IsValid reports whether the quota type is one of the metered types.
func (t QuotaType) IsValid() bool {
	for _, known := range MeteredQuotaTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnlimitedQuota is the sentinel limit meaning "no ceiling".
const UnlimitedQuota int64 = -1

// QuotaStatus is the sticky exceeded marker, distinct from the instantaneous
// capacity check; it is used for alerting and cleared by reset.
type QuotaStatus string

const (
	QuotaOK       QuotaStatus = "ok"
	QuotaExceeded QuotaStatus = "exceeded"
)

// TenantQuota is one (tenant, resource-type) ceiling with a usage counter.
type TenantQuota struct {
	QuotaID      string      `json:"quotaID"` // Primary Key (UUID)
	TenantID     string      `json:"tenantID"`
	QuotaType    QuotaType   `json:"quotaType"`
	QuotaLimit   int64       `json:"quotaLimit"` // UnlimitedQuota means no ceiling
	CurrentUsage int64       `json:"currentUsage"`
	Status       QuotaStatus `json:"status"`
	NextResetAt  time.Time   `json:"nextResetAt"`
	AuditFields
}

// IsUnlimited reports whether the quota has no ceiling.
func (q TenantQuota) IsUnlimited() bool {
	return q.QuotaLimit < 0
}

// HasCapacity reports whether one more resource of this type may be created.
func (q TenantQuota) HasCapacity() bool {
	return q.IsUnlimited() || q.CurrentUsage < q.QuotaLimit
}

// UsagePercent returns current usage as a percentage of the limit.
// It is zero for unlimited quotas.
func (q TenantQuota) UsagePercent() float64 {
	if q.QuotaLimit <= 0 {
		return 0
	}
	return float64(q.CurrentUsage) / float64(q.QuotaLimit) * 100
}

// QuotaSeverity classifies how close a quota is to its ceiling.
type QuotaSeverity string

const (
	SeverityWarning  QuotaSeverity = "warning"
	SeverityCritical QuotaSeverity = "critical"
)

// QuotaAlert is a quota at or above the alerting threshold.
type QuotaAlert struct {
	TenantQuota
	Severity QuotaSeverity `json:"severity"`
}

// AlertSeverity classifies the quota against the given warning threshold
// (a percentage, e.g. 80). The second return is false when the quota is
// below the threshold and not marked exceeded.
func (q TenantQuota) AlertSeverity(thresholdPercent float64) (QuotaSeverity, bool) {
	if q.Status == QuotaExceeded || (!q.IsUnlimited() && q.UsagePercent() >= 100) {
		return SeverityCritical, true
	}
	if !q.IsUnlimited() && q.UsagePercent() >= thresholdPercent {
		return SeverityWarning, true
	}
	return "", false
}
