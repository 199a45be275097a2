package domain

import "time"

// User represents an account that can authenticate against the API.
// A user belongs to exactly one tenant and carries a role within it.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	TenantID     string     `json:"tenantID"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         TenantRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
