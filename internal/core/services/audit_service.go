package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// auditService maintains the append-only action trail.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

// Ensure auditService implements the portssvc.AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) RecordAction(ctx context.Context, entry domain.AuditLog) error {
	if entry.AuditID == "" {
		entry.AuditID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.TenantID == "" {
		return fmt.Errorf("%w: audit entry requires a tenant ID", apperrors.ErrValidation)
	}
	if entry.Action == "" {
		return fmt.Errorf("%w: audit entry requires an action", apperrors.ErrValidation)
	}
	return s.auditRepo.SaveAuditLog(ctx, entry)
}

func (s *auditService) ListAuditLogs(ctx context.Context, tenantID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	var entityKind *domain.EntityKind
	if params.EntityKind != nil {
		kind := domain.EntityKind(*params.EntityKind)
		entityKind = &kind
	}

	entries, nextToken, err := s.auditRepo.ListAuditLogs(ctx, tenantID, entityKind, params.EntityID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := dto.ToListAuditLogsResponse(entries, nextToken)
	return &resp, nil
}

// DeleteAuditLog prunes an entry while recording the removal itself, so the
// trail keeps a tombstone for every privileged deletion.
func (s *auditService) DeleteAuditLog(ctx context.Context, tenantID, auditID string, requestingUserID string) error {
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	deletionEntry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     requestingUserID,
		Action:     "audit_log.deleted",
		EntityKind: domain.EntityAuditLog,
		EntityID:   auditID,
		CreatedAt:  time.Now(),
	}

	if err := s.auditRepo.DeleteAuditLog(ctx, tenantID, auditID, deletionEntry); err != nil {
		s.LogError(ctx, err, "Failed to delete audit entry", "audit_id", auditID)
		return err
	}

	s.LogInfo(ctx, "Audit entry deleted", "audit_id", auditID)
	return nil
}
