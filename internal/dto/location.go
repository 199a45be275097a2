package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// CreateLocationRequest defines data for creating a new location.
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateLocationRequest defines the data allowed for updating a location.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// LocationResponse defines data returned for a location.
type LocationResponse struct {
	LocationID string    `json:"locationID"`
	TenantID   string    `json:"tenantID"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToLocationResponse converts domain.Location to DTO.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID: l.LocationID,
		TenantID:   l.TenantID,
		Name:       l.Name,
		Address:    l.Address,
		CreatedAt:  l.CreatedAt,
	}
}

// ListLocationsResponse wraps a list of locations.
type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// ToListLocationsResponse converts a slice of domain.Location to DTO.
func ToListLocationsResponse(ls []domain.Location) ListLocationsResponse {
	list := make([]LocationResponse, len(ls))
	for i, l := range ls {
		list[i] = ToLocationResponse(&l)
	}
	return ListLocationsResponse{Locations: list}
}
