package dto

// LoginRequest represents the credentials posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterTenantRequest bootstraps a tenant together with its admin user.
type RegisterTenantRequest struct {
	TenantName    string `json:"tenantName" binding:"required"`
	TenantSlug    string `json:"tenantSlug" binding:"required,lowercase,alphanum"`
	AdminUsername string `json:"adminUsername" binding:"required,min=3"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminName     string `json:"adminName" binding:"required"`
	AdminPassword string `json:"adminPassword" binding:"required,min=8"`
}

// RegisterTenantResponse returns the created tenant and admin user.
type RegisterTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}
