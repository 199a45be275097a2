package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// LocationSvcFacade defines operations for managing locations
type LocationSvcFacade interface {
	// GetLocationByID retrieves a specific location by ID within a tenant.
	GetLocationByID(ctx context.Context, tenantID, locationID string) (*domain.Location, error)

	// ListLocations retrieves a paginated list of locations in a tenant.
	ListLocations(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Location, error)

	// CreateLocation persists a new location.
	CreateLocation(ctx context.Context, tenantID string, req dto.CreateLocationRequest, creatorUserID string) (*domain.Location, error)

	// UpdateLocation updates location details.
	UpdateLocation(ctx context.Context, tenantID, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error)

	// DeactivateLocation marks a location as deleted (soft delete).
	DeactivateLocation(ctx context.Context, tenantID, locationID string, requestingUserID string) error
}
