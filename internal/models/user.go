package models

import "time"

// User maps to the users table.
type User struct {
	UserID       string `db:"user_id"`
	TenantID     string `db:"tenant_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
