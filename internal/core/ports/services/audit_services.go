package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// AuditSvcFacade defines operations for the audit trail
type AuditSvcFacade interface {
	// RecordAction appends an audit entry for a tenant-scoped action.
	RecordAction(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs retrieves a paginated list of audit entries.
	ListAuditLogs(ctx context.Context, tenantID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)

	// DeleteAuditLog removes an entry; the removal itself is recorded. Only
	// tenant admins may do this.
	DeleteAuditLog(ctx context.Context, tenantID, auditID string, requestingUserID string) error
}
