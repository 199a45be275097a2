package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// QuotaReaderSvc defines read operations for tenant quotas
type QuotaReaderSvc interface {
	// GetQuota retrieves the quota row for a tenant and quota type.
	GetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error)

	// ListQuotas retrieves all quota rows for a tenant.
	ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error)

	// CheckQuota reports whether the tenant has capacity for one more unit
	// of the given type, without consuming it.
	CheckQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (bool, error)

	// ListQuotaAlerts returns the tenant's quotas at or above the warning
	// threshold, each tagged with a severity.
	ListQuotaAlerts(ctx context.Context, tenantID string) ([]domain.QuotaAlert, error)
}

// QuotaWriterSvc defines write operations for tenant quotas
type QuotaWriterSvc interface {
	// ConsumeQuota atomically claims one unit of the tenant's quota. It
	// returns apperrors.ErrQuotaExceeded when no capacity remains.
	ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error)

	// ReleaseQuota returns one previously consumed unit.
	ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) error

	// SetQuotaLimit sets a new limit for a quota type. A negative limit
	// means unlimited.
	SetQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, requestingUserID string) (*domain.TenantQuota, error)

	// IncrementQuota adds amount to a quota's usage as an admin adjustment,
	// bypassing the capacity gate. The sticky exceeded status flips when the
	// new usage crosses the limit.
	IncrementQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, requestingUserID string) (*domain.TenantQuota, error)

	// ResetQuota zeroes a single quota's usage ahead of schedule and advances
	// its next reset by one month.
	ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error)

	// SeedDefaultQuotas creates the standard quota rows for a new tenant.
	SeedDefaultQuotas(ctx context.Context, tenantID string, creatorUserID string) error

	// ResetDueQuotas zeroes usage for every quota whose reset timestamp has
	// passed and schedules the next monthly reset.
	ResetDueQuotas(ctx context.Context) (int64, error)
}

// QuotaSvcFacade combines all quota-related service interfaces
type QuotaSvcFacade interface {
	QuotaReaderSvc
	QuotaWriterSvc
}
