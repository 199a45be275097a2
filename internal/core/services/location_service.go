package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// locationService manages the physical sites jobs run at.
type locationService struct {
	BaseService
	locationRepo portsrepo.LocationRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo portsrepo.LocationRepositoryFacade, tenantSvc portssvc.TenantSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.LocationSvcFacade {
	return &locationService{
		BaseService:  BaseService{TenantAuthorizer: tenantSvc},
		locationRepo: locationRepo,
		auditSvc:     auditSvc,
	}
}

// Ensure locationService implements the portssvc.LocationSvcFacade interface
var _ portssvc.LocationSvcFacade = (*locationService)(nil)

func (s *locationService) GetLocationByID(ctx context.Context, tenantID, locationID string) (*domain.Location, error) {
	return s.locationRepo.FindLocationByID(ctx, tenantID, locationID)
}

func (s *locationService) ListLocations(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Location, error) {
	return s.locationRepo.ListLocations(ctx, tenantID, limit, offset)
}

func (s *locationService) CreateLocation(ctx context.Context, tenantID string, req dto.CreateLocationRequest, creatorUserID string) (*domain.Location, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	now := time.Now()
	location := domain.Location{
		LocationID: uuid.NewString(),
		TenantID:   tenantID,
		Name:       req.Name,
		Address:    req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		s.LogError(ctx, err, "Failed to save location")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, creatorUserID, "location.created", location.LocationID, map[string]any{
		"name": location.Name,
	})

	return &location, nil
}

func (s *locationService) UpdateLocation(ctx context.Context, tenantID, locationID string, req dto.UpdateLocationRequest, requestingUserID string) (*domain.Location, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.FindLocationByID(ctx, tenantID, locationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	location.LastUpdatedAt = time.Now()
	location.LastUpdatedBy = requestingUserID

	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		s.LogError(ctx, err, "Failed to update location")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "location.updated", locationID, map[string]any{
		"name": location.Name,
	})

	return location, nil
}

func (s *locationService) DeactivateLocation(ctx context.Context, tenantID, locationID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleManager); err != nil {
		return err
	}

	now := time.Now()
	if err := s.locationRepo.MarkLocationDeleted(ctx, tenantID, locationID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate location")
		return err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "location.deactivated", locationID, nil)
	return nil
}

func (s *locationService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityLocation,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
