package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

var (
	ErrAssetNotAvailable   = errors.New("asset is not available")
	ErrAssetNotCheckedOut  = errors.New("asset is not checked out to a worker")
	ErrAssetStillCheckedOut = errors.New("asset is still checked out to a worker")
)

// assetService manages tenant equipment and its checkout to workers.
type assetService struct {
	BaseService
	assetRepo    portsrepo.AssetRepositoryFacade
	workerRepo   portsrepo.WorkerReader
	locationRepo portsrepo.LocationReader
	quotaSvc     portssvc.QuotaSvcFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade, workerRepo portsrepo.WorkerReader, locationRepo portsrepo.LocationReader, tenantSvc portssvc.TenantSvcFacade, quotaSvc portssvc.QuotaSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.AssetSvcFacade {
	return &assetService{
		BaseService:  BaseService{TenantAuthorizer: tenantSvc},
		assetRepo:    assetRepo,
		workerRepo:   workerRepo,
		locationRepo: locationRepo,
		quotaSvc:     quotaSvc,
		auditSvc:     auditSvc,
	}
}

// Ensure assetService implements the portssvc.AssetSvcFacade interface
var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) GetAssetByID(ctx context.Context, tenantID, assetID string) (*domain.Asset, error) {
	return s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
}

func (s *assetService) ListAssets(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Asset, error) {
	return s.assetRepo.ListAssets(ctx, tenantID, limit, offset)
}

func (s *assetService) ListAssetsByWorker(ctx context.Context, tenantID, workerID string) ([]domain.Asset, error) {
	return s.assetRepo.ListAssetsByWorker(ctx, tenantID, workerID)
}

// CreateAsset registers a new asset, claiming one unit of the tenant's asset
// quota.
func (s *assetService) CreateAsset(ctx context.Context, tenantID string, req dto.CreateAssetRequest, creatorUserID string) (*domain.Asset, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.LocationID != nil {
		if _, err := s.locationRepo.FindLocationByID(ctx, tenantID, *req.LocationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: location %s not found in tenant", apperrors.ErrValidation, *req.LocationID)
			}
			return nil, err
		}
	}

	if _, err := s.quotaSvc.ConsumeQuota(ctx, tenantID, domain.QuotaAssets, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	asset := domain.Asset{
		AssetID:    uuid.NewString(),
		TenantID:   tenantID,
		LocationID: req.LocationID,
		Name:       req.Name,
		AssetTag:   req.AssetTag,
		Status:     domain.AssetAvailable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.releaseQuota(ctx, tenantID, creatorUserID)
		s.LogError(ctx, err, "Failed to save asset")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, creatorUserID, "asset.created", asset.AssetID, map[string]any{
		"name":      asset.Name,
		"asset_tag": asset.AssetTag,
	})

	return &asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, tenantID, assetID string, req dto.UpdateAssetRequest, requestingUserID string) (*domain.Asset, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Status != nil {
		status := domain.AssetStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid asset status %q", apperrors.ErrValidation, *req.Status)
		}
		// Checkout state is managed through assign and release, not edits.
		if status == domain.AssetAssigned && asset.Status != domain.AssetAssigned {
			return nil, fmt.Errorf("%w: use the assign operation to hand an asset to a worker", apperrors.ErrValidation)
		}
		if asset.Status == domain.AssetAssigned && status != domain.AssetAssigned {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAssetStillCheckedOut)
		}
		asset.Status = status
	}
	if req.LocationID != nil {
		if _, err := s.locationRepo.FindLocationByID(ctx, tenantID, *req.LocationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: location %s not found in tenant", apperrors.ErrValidation, *req.LocationID)
			}
			return nil, err
		}
		asset.LocationID = req.LocationID
	}
	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = requestingUserID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to update asset")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "asset.updated", assetID, map[string]any{
		"status": string(asset.Status),
	})

	return asset, nil
}

// AssignAssetToWorker checks an available asset out to an active worker.
func (s *assetService) AssignAssetToWorker(ctx context.Context, tenantID, assetID, workerID string, requestingUserID string) (*domain.Asset, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetAvailable {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrResourceUnavailable, ErrAssetNotAvailable, asset.Status)
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, tenantID, workerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsAvailable() {
		return nil, fmt.Errorf("%w: worker %s is not active", apperrors.ErrResourceUnavailable, workerID)
	}

	asset.Status = domain.AssetAssigned
	asset.AssignedWorkerID = &workerID
	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = requestingUserID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to assign asset")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "asset.assigned", assetID, map[string]any{
		"worker_id": workerID,
	})

	s.LogInfo(ctx, "Asset assigned", "asset_id", assetID, "worker_id", workerID, "tenant_id", tenantID)
	return asset, nil
}

// ReleaseAssetFromWorker returns a checked out asset to the available pool.
func (s *assetService) ReleaseAssetFromWorker(ctx context.Context, tenantID, assetID string, requestingUserID string) (*domain.Asset, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetAssigned || asset.AssignedWorkerID == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAssetNotCheckedOut)
	}

	previousWorkerID := *asset.AssignedWorkerID
	asset.Status = domain.AssetAvailable
	asset.AssignedWorkerID = nil
	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = requestingUserID

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to release asset")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "asset.released", assetID, map[string]any{
		"worker_id": previousWorkerID,
	})

	return asset, nil
}

// DeactivateAsset soft deletes an asset and releases its quota unit. Checked
// out assets must be released first.
func (s *assetService) DeactivateAsset(ctx context.Context, tenantID, assetID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return err
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, tenantID, assetID)
	if err != nil {
		return err
	}
	if asset.Status == domain.AssetAssigned {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAssetStillCheckedOut)
	}

	now := time.Now()
	if err := s.assetRepo.MarkAssetDeleted(ctx, tenantID, assetID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate asset")
		return err
	}

	s.releaseQuota(ctx, tenantID, requestingUserID)
	s.recordAudit(ctx, tenantID, requestingUserID, "asset.deactivated", assetID, nil)
	return nil
}

func (s *assetService) releaseQuota(ctx context.Context, tenantID, userID string) {
	if err := s.quotaSvc.ReleaseQuota(ctx, tenantID, domain.QuotaAssets, userID); err != nil {
		s.LogError(ctx, err, "Failed to release asset quota")
	}
}

func (s *assetService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityAsset,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
