package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenantByID retrieves a specific tenant by its ID.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves a paginated list of tenants.
	ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant persists a new tenant and seeds its default quotas.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// UpdateTenant updates tenant details.
	UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, requestingUserID string) (*domain.Tenant, error)

	// DeactivateTenant marks a tenant as deleted (soft delete).
	DeactivateTenant(ctx context.Context, tenantID string, requestingUserID string) error
}

// TenantAuthorizerSvc defines authorization checks scoped to a tenant
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user belongs to the tenant and holds
	// at least the required role. It returns the user on success.
	AuthorizeUserAction(ctx context.Context, tenantID string, userID string, requiredRole domain.TenantRole) (*domain.User, error)
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
	TenantAuthorizerSvc
}
