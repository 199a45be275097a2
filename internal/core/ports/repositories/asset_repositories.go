package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// AssetReader defines read operations for asset data
type AssetReader interface {
	// FindAssetByID retrieves a specific asset by ID, scoped to a tenant.
	FindAssetByID(ctx context.Context, tenantID, assetID string) (*domain.Asset, error)

	// ListAssets retrieves a paginated list of assets in a tenant.
	ListAssets(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Asset, error)

	// ListAssetsByWorker retrieves the assets currently assigned to a worker.
	ListAssetsByWorker(ctx context.Context, tenantID, workerID string) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data
type AssetWriter interface {
	// SaveAsset persists a new asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset updates an existing asset's details.
	UpdateAsset(ctx context.Context, asset domain.Asset) error
}

// AssetLifecycleManager defines operations for managing asset lifecycle
type AssetLifecycleManager interface {
	// MarkAssetDeleted marks an asset as deleted (soft delete).
	MarkAssetDeleted(ctx context.Context, tenantID, assetID string, deletedAt time.Time, deletedBy string) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
	AssetLifecycleManager
}
