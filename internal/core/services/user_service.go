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
	"github.com/crewstack/workforce_app/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// userService provides user management and credential verification.
type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	tenantSvc portssvc.TenantSvcFacade
	quotaSvc  portssvc.QuotaSvcFacade
	auditSvc  portssvc.AuditSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, tenantSvc portssvc.TenantSvcFacade, quotaSvc portssvc.QuotaSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{TenantAuthorizer: tenantSvc},
		userRepo:    userRepo,
		tenantSvc:   tenantSvc,
		quotaSvc:    quotaSvc,
		auditSvc:    auditSvc,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, tenantID, userID)
}

func (s *userService) ListUsers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, tenantID, limit, offset)
}

// CreateUser persists a new user after claiming one unit of the tenant's user
// quota. The quota unit is returned if the insert fails.
func (s *userService) CreateUser(ctx context.Context, tenantID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if _, err := s.AuthorizeUser(ctx, tenantID, creatorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	role := domain.TenantRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, req.Role)
	}

	if _, err := s.quotaSvc.ConsumeQuota(ctx, tenantID, domain.QuotaUsers, creatorUserID); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.releaseQuota(ctx, tenantID, domain.QuotaUsers, creatorUserID)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     tenantID,
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.releaseQuota(ctx, tenantID, domain.QuotaUsers, creatorUserID)
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, creatorUserID, "user.created", user.UserID, map[string]any{
		"username": user.Username,
		"role":     string(user.Role),
	})

	s.LogInfo(ctx, "User created", "user_id", user.UserID, "tenant_id", tenantID)
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, tenantID, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	// Users may edit themselves; changing someone else requires admin.
	if requestingUserID != userID {
		if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		// Role changes always require admin, even on self.
		if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
			return nil, err
		}
		role := domain.TenantRole(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = role
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user")
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "user.updated", userID, map[string]any{
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
	})

	return user, nil
}

// DeactivateUser soft deletes a user and releases their quota unit.
func (s *userService) DeactivateUser(ctx context.Context, tenantID, userID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	if err := s.userRepo.MarkUserDeleted(ctx, tenantID, userID, now, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user")
		return err
	}

	s.releaseQuota(ctx, tenantID, domain.QuotaUsers, requestingUserID)
	s.recordAudit(ctx, tenantID, requestingUserID, "user.deactivated", userID, nil)
	s.LogInfo(ctx, "User deactivated", "user_id", userID, "tenant_id", tenantID)
	return nil
}

// AuthenticateUser verifies a username and password pair. Unknown usernames
// and bad passwords are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidCredentials)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidCredentials)
	}

	return user, nil
}

// AuthenticateGoogleUser signs in an existing user by their verified Google
// email. Accounts are never created here.
func (s *userService) AuthenticateGoogleUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for this Google identity", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// RegisterTenant bootstraps a new tenant with its admin user. The admin is
// created directly because no authorized user exists in the tenant yet.
func (s *userService) RegisterTenant(ctx context.Context, req dto.RegisterTenantRequest) (*domain.Tenant, *domain.User, error) {
	adminUserID := uuid.NewString()

	tenant, err := s.tenantSvc.CreateTenant(ctx, dto.CreateTenantRequest{
		Name: req.TenantName,
		Slug: req.TenantSlug,
	}, adminUserID)
	if err != nil {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	admin := domain.User{
		UserID:       adminUserID,
		TenantID:     tenant.TenantID,
		Username:     req.AdminUsername,
		Email:        req.AdminEmail,
		Name:         req.AdminName,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, admin); err != nil {
		s.LogError(ctx, err, "Failed to save admin user during tenant registration")
		return nil, nil, err
	}

	// The admin occupies one unit of the seeded user quota.
	if _, err := s.quotaSvc.ConsumeQuota(ctx, tenant.TenantID, domain.QuotaUsers, adminUserID); err != nil && !errors.Is(err, apperrors.ErrQuotaExceeded) {
		s.LogError(ctx, err, "Failed to consume user quota for admin")
	}

	s.recordAudit(ctx, tenant.TenantID, adminUserID, "tenant.registered", tenant.TenantID, map[string]any{
		"slug":           tenant.Slug,
		"admin_username": admin.Username,
	})

	s.LogInfo(ctx, "Tenant registered", "tenant_id", tenant.TenantID, "admin_user_id", admin.UserID)
	return tenant, &admin, nil
}

func (s *userService) releaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, userID string) {
	if err := s.quotaSvc.ReleaseQuota(ctx, tenantID, quotaType, userID); err != nil {
		s.LogError(ctx, err, "Failed to release quota", "quota_type", string(quotaType))
	}
}

func (s *userService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityUser,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
