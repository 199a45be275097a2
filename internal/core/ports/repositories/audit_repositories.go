package repositories

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// AuditReader defines read operations for audit log data
type AuditReader interface {
	// ListAuditLogs retrieves a paginated list of audit entries for a
	// tenant, optionally filtered by entity, using token-based pagination.
	ListAuditLogs(ctx context.Context, tenantID string, entityKind *domain.EntityKind, entityID *string, limit int, nextToken *string) ([]domain.AuditLog, *string, error)

	// FindAuditLogByID retrieves a single audit entry.
	FindAuditLogByID(ctx context.Context, tenantID, auditID string) (*domain.AuditLog, error)
}

// AuditWriter defines write operations for audit log data
type AuditWriter interface {
	// SaveAuditLog appends a new audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// DeleteAuditLog removes an audit entry and appends a deletion entry in
	// the same transaction, so the removal itself stays on record.
	DeleteAuditLog(ctx context.Context, tenantID, auditID string, deletionEntry domain.AuditLog) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
