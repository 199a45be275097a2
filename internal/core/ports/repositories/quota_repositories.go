package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// QuotaReader defines read operations for tenant quota data
type QuotaReader interface {
	// FindQuota retrieves the quota row for a tenant and quota type.
	FindQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error)

	// ListQuotas retrieves all quota rows for a tenant.
	ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error)

	// FindQuotasAboveUsage retrieves a tenant's limited quotas whose usage
	// percentage is at or above the given threshold.
	FindQuotasAboveUsage(ctx context.Context, tenantID string, thresholdPercent int) ([]domain.TenantQuota, error)
}

// QuotaWriter defines write operations for tenant quota data
type QuotaWriter interface {
	// SaveQuota persists a new quota row.
	SaveQuota(ctx context.Context, quota domain.TenantQuota) error

	// UpdateQuotaLimit sets a new limit for a quota and recomputes its status.
	UpdateQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, updatedBy string, updatedAt time.Time) error

	// ConsumeQuota atomically increments usage by one if capacity remains.
	// It returns the updated quota, or apperrors.ErrQuotaExceeded when the
	// conditional update matched no row because the limit was reached.
	ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error)

	// ReleaseQuota atomically decrements usage by one, flooring at zero,
	// and recomputes the exceeded status.
	ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error)

	// IncrementQuotaUsage unconditionally adds amount to usage and flips the
	// sticky exceeded status when the new usage reaches the limit.
	IncrementQuotaUsage(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error)

	// ResetQuota zeroes usage for a single quota row and advances its next
	// reset timestamp by one month.
	ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, updatedBy string, updatedAt time.Time) (*domain.TenantQuota, error)

	// ResetQuotaUsage zeroes usage and advances the next reset timestamp by
	// one month for every quota row due for reset. It returns the number of
	// rows reset.
	ResetQuotaUsage(ctx context.Context, asOf time.Time) (int64, error)
}

// QuotaRepositoryFacade combines all quota-related repository interfaces
type QuotaRepositoryFacade interface {
	QuotaReader
	QuotaWriter
}
