package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// SetQuotaLimitRequest sets a new limit for a quota type. A negative limit
// means unlimited.
type SetQuotaLimitRequest struct {
	Limit *int64 `json:"limit" binding:"required,min=-1"`
}

// IncrementQuotaRequest carries the amount an admin adds to a quota's usage.
type IncrementQuotaRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// QuotaCheckResponse reports whether one more unit of a type fits.
type QuotaCheckResponse struct {
	QuotaType string `json:"quotaType"`
	Allowed   bool   `json:"allowed"`
}

// QuotaResponse defines data returned for a tenant quota.
type QuotaResponse struct {
	QuotaType    string    `json:"quotaType"`
	QuotaLimit   int64     `json:"quotaLimit"`
	CurrentUsage int64     `json:"currentUsage"`
	Status       string    `json:"status"`
	Unlimited    bool      `json:"unlimited"`
	NextResetAt  time.Time `json:"nextResetAt"`
}

// ToQuotaResponse converts domain.TenantQuota to DTO.
func ToQuotaResponse(q *domain.TenantQuota) QuotaResponse {
	return QuotaResponse{
		QuotaType:    string(q.QuotaType),
		QuotaLimit:   q.QuotaLimit,
		CurrentUsage: q.CurrentUsage,
		Status:       string(q.Status),
		Unlimited:    q.IsUnlimited(),
		NextResetAt:  q.NextResetAt,
	}
}

// ListQuotasResponse wraps a tenant's quota rows.
type ListQuotasResponse struct {
	Quotas []QuotaResponse `json:"quotas"`
}

// ToListQuotasResponse converts a slice of domain.TenantQuota to DTO.
func ToListQuotasResponse(qs []domain.TenantQuota) ListQuotasResponse {
	list := make([]QuotaResponse, len(qs))
	for i, q := range qs {
		list[i] = ToQuotaResponse(&q)
	}
	return ListQuotasResponse{Quotas: list}
}

// QuotaAlertResponse defines data returned for a quota alert.
type QuotaAlertResponse struct {
	QuotaResponse
	Severity string `json:"severity"`
}

// ListQuotaAlertsResponse wraps a tenant's active quota alerts.
type ListQuotaAlertsResponse struct {
	Alerts []QuotaAlertResponse `json:"alerts"`
}

// ToListQuotaAlertsResponse converts a slice of domain.QuotaAlert to DTO.
func ToListQuotaAlertsResponse(alerts []domain.QuotaAlert) ListQuotaAlertsResponse {
	list := make([]QuotaAlertResponse, len(alerts))
	for i, a := range alerts {
		list[i] = QuotaAlertResponse{
			QuotaResponse: ToQuotaResponse(&a.TenantQuota),
			Severity:      string(a.Severity),
		}
	}
	return ListQuotaAlertsResponse{Alerts: list}
}
