package mapping

import (
	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/models"
)

func ToModelTenantQuota(d domain.TenantQuota) models.TenantQuota {
	return models.TenantQuota{
		QuotaID:      d.QuotaID,
		TenantID:     d.TenantID,
		QuotaType:    string(d.QuotaType),
		QuotaLimit:   d.QuotaLimit,
		CurrentUsage: d.CurrentUsage,
		Status:       string(d.Status),
		NextResetAt:  d.NextResetAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTenantQuota(m models.TenantQuota) domain.TenantQuota {
	return domain.TenantQuota{
		QuotaID:      m.QuotaID,
		TenantID:     m.TenantID,
		QuotaType:    domain.QuotaType(m.QuotaType),
		QuotaLimit:   m.QuotaLimit,
		CurrentUsage: m.CurrentUsage,
		Status:       domain.QuotaStatus(m.Status),
		NextResetAt:  m.NextResetAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTenantQuotaSlice(ms []models.TenantQuota) []domain.TenantQuota {
	out := make([]domain.TenantQuota, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainTenantQuota(m))
	}
	return out
}
