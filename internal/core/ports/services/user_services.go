package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by ID within a tenant.
	GetUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users in a tenant.
	ListUsers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser persists a new user, consuming one unit of the tenant's
	// user quota.
	CreateUser(ctx context.Context, tenantID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates user details.
	UpdateUser(ctx context.Context, tenantID, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeactivateUser marks a user as deleted and releases their quota unit.
	DeactivateUser(ctx context.Context, tenantID, userID string, requestingUserID string) error
}

// UserAuthenticatorSvc defines authentication operations
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies a username and password pair.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// AuthenticateGoogleUser signs in an existing user by their verified
	// Google email. Users are never auto-provisioned; tenant membership is
	// established through the normal invite flow.
	AuthenticateGoogleUser(ctx context.Context, email string) (*domain.User, error)

	// RegisterTenant bootstraps a new tenant together with its admin user.
	RegisterTenant(ctx context.Context, req dto.RegisterTenantRequest) (*domain.Tenant, *domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
