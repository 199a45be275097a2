package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// LocationReader defines read operations for location data
type LocationReader interface {
	// FindLocationByID retrieves a specific location by ID, scoped to a tenant.
	FindLocationByID(ctx context.Context, tenantID, locationID string) (*domain.Location, error)

	// ListLocations retrieves a paginated list of locations in a tenant.
	ListLocations(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Location, error)
}

// LocationWriter defines write operations for location data
type LocationWriter interface {
	// SaveLocation persists a new location.
	SaveLocation(ctx context.Context, location domain.Location) error

	// UpdateLocation updates an existing location's details.
	UpdateLocation(ctx context.Context, location domain.Location) error
}

// LocationLifecycleManager defines operations for managing location lifecycle
type LocationLifecycleManager interface {
	// MarkLocationDeleted marks a location as deleted (soft delete).
	MarkLocationDeleted(ctx context.Context, tenantID, locationID string, deletedAt time.Time, deletedBy string) error
}

// LocationRepositoryFacade combines all location-related repository interfaces
type LocationRepositoryFacade interface {
	LocationReader
	LocationWriter
	LocationLifecycleManager
}
