package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// AssetSvcFacade defines operations for managing assets
type AssetSvcFacade interface {
	// GetAssetByID retrieves a specific asset by ID within a tenant.
	GetAssetByID(ctx context.Context, tenantID, assetID string) (*domain.Asset, error)

	// ListAssets retrieves a paginated list of assets in a tenant.
	ListAssets(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Asset, error)

	// ListAssetsByWorker retrieves the assets currently checked out to a worker.
	ListAssetsByWorker(ctx context.Context, tenantID, workerID string) ([]domain.Asset, error)

	// CreateAsset persists a new asset, consuming one unit of the tenant's
	// asset quota.
	CreateAsset(ctx context.Context, tenantID string, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error)

	// UpdateAsset updates asset details.
	UpdateAsset(ctx context.Context, tenantID, assetID string, req dto.UpdateAssetRequest, requestingUserID string) (*domain.Asset, error)

	// AssignAssetToWorker hands an available asset to a worker.
	AssignAssetToWorker(ctx context.Context, tenantID, assetID, workerID string, requestingUserID string) (*domain.Asset, error)

	// ReleaseAssetFromWorker returns an assigned asset to the pool.
	ReleaseAssetFromWorker(ctx context.Context, tenantID, assetID string, requestingUserID string) (*domain.Asset, error)

	// DeactivateAsset marks an asset as deleted and releases its quota unit.
	DeactivateAsset(ctx context.Context, tenantID, assetID string, requestingUserID string) error
}
