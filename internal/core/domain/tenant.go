package domain

import "time"

// TenantStatus indicates whether a tenant may use the platform.
type TenantStatus string

const (
	TenantActive    TenantStatus = "ACTIVE"
	TenantSuspended TenantStatus = "SUSPENDED"
)

// IsValid reports whether the status is one of the known tenant statuses.
func (s TenantStatus) IsValid() bool {
	return s == TenantActive || s == TenantSuspended
}

// Tenant is the isolation boundary of the system. Every other entity (except
// global lookup data) carries a tenant identifier, and no query may return
// rows belonging to a different tenant than the acting user's.
type Tenant struct {
	TenantID string       `json:"tenantID"` // Primary Key (UUID)
	Name     string       `json:"name"`
	Slug     string       `json:"slug"` // URL-safe short name, unique
	Status   TenantStatus `json:"status"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// TenantRole defines the possible roles a user can have within a tenant.
type TenantRole string

const (
	RoleAdmin    TenantRole = "ADMIN"
	RoleManager  TenantRole = "MANAGER"
	RoleMember   TenantRole = "MEMBER"
	RoleReadOnly TenantRole = "READONLY"
)

// roleRank orders roles for authorization checks. Higher rank implies all
// permissions of lower ranks.
var roleRank = map[TenantRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleManager:  3,
	RoleAdmin:    4,
}

// Satisfies reports whether the role grants at least the permissions of required.
func (r TenantRole) Satisfies(required TenantRole) bool {
	return roleRank[r] >= roleRank[required]
}

// IsValid reports whether the role is one of the known tenant roles.
func (r TenantRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}
