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
	ErrTenantSuspended = errors.New("tenant is suspended")
)

// tenantService provides tenant management and tenant-scoped authorization.
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	quotaSvc   portssvc.QuotaWriterSvc
	auditSvc   portssvc.AuditSvcFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, quotaSvc portssvc.QuotaWriterSvc, auditSvc portssvc.AuditSvcFacade) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		quotaSvc:   quotaSvc,
		auditSvc:   auditSvc,
	}
}

// Ensure tenantService implements the portssvc.TenantSvcFacade interface
var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

func (s *tenantService) ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error) {
	return s.tenantRepo.ListTenants(ctx, limit, offset)
}

// CreateTenant persists a new tenant and seeds its default quota rows.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now()
	tenant := domain.Tenant{
		TenantID: uuid.NewString(),
		Name:     req.Name,
		Slug:     req.Slug,
		Status:   domain.TenantActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant")
		return nil, err
	}

	if err := s.quotaSvc.SeedDefaultQuotas(ctx, tenant.TenantID, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to seed default quotas for tenant")
		return nil, fmt.Errorf("failed to seed default quotas: %w", err)
	}

	s.recordAudit(ctx, tenant.TenantID, creatorUserID, "tenant.created", tenant.TenantID, map[string]any{
		"name": tenant.Name,
		"slug": tenant.Slug,
	})

	s.LogInfo(ctx, "Tenant created", "tenant_id", tenant.TenantID)
	return &tenant, nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, requestingUserID string) (*domain.Tenant, error) {
	if _, err := s.AuthorizeUserAction(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Status != nil {
		status := domain.TenantStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid tenant status %q", apperrors.ErrValidation, *req.Status)
		}
		tenant.Status = status
	}
	tenant.LastUpdatedAt = time.Now()
	tenant.LastUpdatedBy = requestingUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update tenant")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "tenant.updated", tenantID, map[string]any{
		"name":   tenant.Name,
		"status": string(tenant.Status),
	})

	return tenant, nil
}

func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID string, requestingUserID string) error {
	if _, err := s.AuthorizeUserAction(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	if err := s.tenantRepo.MarkTenantDeleted(ctx, tenantID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate tenant")
		return err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "tenant.deactivated", tenantID, nil)
	s.LogInfo(ctx, "Tenant deactivated", "tenant_id", tenantID)
	return nil
}

// AuthorizeUserAction verifies the user exists in the tenant, the tenant is
// active, and the user's role covers the required one. Membership failures
// surface as ErrForbidden.
func (s *tenantService) AuthorizeUserAction(ctx context.Context, tenantID string, userID string, requiredRole domain.TenantRole) (*domain.User, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check tenant: %w", err)
	}
	if tenant.Status != domain.TenantActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrTenantSuspended)
	}

	user, err := s.userRepo.FindUserByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of tenant", "user_id", userID, "tenant_id", tenantID)
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to find user in tenant: %w", err)
	}

	if !user.Role.Satisfies(requiredRole) {
		s.LogWarn(ctx, "User role insufficient", "user_id", userID, "role", string(user.Role), "required_role", string(requiredRole))
		return nil, fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
	}

	return user, nil
}

func (s *tenantService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityTenant,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
