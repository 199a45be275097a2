package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// CreateTenantRequest defines data for creating a new tenant.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required,lowercase,alphanum"`
}

// UpdateTenantRequest defines the data allowed for updating a tenant.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateTenantRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED"`
}

// TenantResponse defines data returned for a tenant.
type TenantResponse struct {
	TenantID      string    `json:"tenantID"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToTenantResponse converts domain.Tenant to DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:      t.TenantID,
		Name:          t.Name,
		Slug:          t.Slug,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ListTenantsResponse wraps a list of tenants.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// ToListTenantsResponse converts a slice of domain.Tenant to DTO.
func ToListTenantsResponse(ts []domain.Tenant) ListTenantsResponse {
	list := make([]TenantResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTenantResponse(&t)
	}
	return ListTenantsResponse{Tenants: list}
}
