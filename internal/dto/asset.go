package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// CreateAssetRequest defines data for creating a new asset.
type CreateAssetRequest struct {
	Name       string  `json:"name" binding:"required"`
	AssetTag   string  `json:"assetTag" binding:"required"`
	LocationID *string `json:"locationID"`
}

// UpdateAssetRequest defines the data allowed for updating an asset.
type UpdateAssetRequest struct {
	Name       *string `json:"name"`
	Status     *string `json:"status" binding:"omitempty,oneof=available assigned maintenance retired"`
	LocationID *string `json:"locationID"`
}

// AssignAssetRequest names the worker an asset is handed to.
type AssignAssetRequest struct {
	WorkerID string `json:"workerID" binding:"required"`
}

// AssetResponse defines data returned for an asset.
type AssetResponse struct {
	AssetID          string    `json:"assetID"`
	TenantID         string    `json:"tenantID"`
	LocationID       *string   `json:"locationID,omitempty"`
	Name             string    `json:"name"`
	AssetTag         string    `json:"assetTag"`
	Status           string    `json:"status"`
	AssignedWorkerID *string   `json:"assignedWorkerID,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToAssetResponse converts domain.Asset to DTO.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		AssetID:          a.AssetID,
		TenantID:         a.TenantID,
		LocationID:       a.LocationID,
		Name:             a.Name,
		AssetTag:         a.AssetTag,
		Status:           string(a.Status),
		AssignedWorkerID: a.AssignedWorkerID,
		CreatedAt:        a.CreatedAt,
	}
}

// ListAssetsResponse wraps a list of assets.
type ListAssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// ToListAssetsResponse converts a slice of domain.Asset to DTO.
func ToListAssetsResponse(as []domain.Asset) ListAssetsResponse {
	list := make([]AssetResponse, len(as))
	for i, a := range as {
		list[i] = ToAssetResponse(&a)
	}
	return ListAssetsResponse{Assets: list}
}
