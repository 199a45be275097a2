package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// FindTenantBySlug retrieves a tenant by its URL slug.
	FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error)

	// ListTenants retrieves a paginated list of tenants.
	ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// UpdateTenant updates an existing tenant's details.
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error
}

// TenantLifecycleManager defines operations for managing tenant lifecycle
type TenantLifecycleManager interface {
	// MarkTenantDeleted marks a tenant as deleted (soft delete).
	MarkTenantDeleted(ctx context.Context, tenantID string, deletedAt time.Time, deletedBy string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
	TenantLifecycleManager
}
