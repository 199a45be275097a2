package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for listing audit entries.
type ListAuditLogsParams struct {
	EntityKind *string `form:"entityKind"`
	EntityID   *string `form:"entityID"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
}

// AuditLogResponse defines data returned for an audit entry.
type AuditLogResponse struct {
	AuditID    string         `json:"auditID"`
	TenantID   string         `json:"tenantID"`
	UserID     string         `json:"userID"`
	Action     string         `json:"action"`
	EntityKind string         `json:"entityKind"`
	EntityID   string         `json:"entityID"`
	OldValues  map[string]any `json:"oldValues,omitempty"`
	NewValues  map[string]any `json:"newValues,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ToAuditLogResponse converts domain.AuditLog to DTO.
func ToAuditLogResponse(e *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditID:    e.AuditID,
		TenantID:   e.TenantID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityKind: string(e.EntityKind),
		EntityID:   e.EntityID,
		OldValues:  e.OldValues,
		NewValues:  e.NewValues,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
}

// ListAuditLogsResponse wraps a page of audit entries with the next page token.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"auditLogs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListAuditLogsResponse converts a page of domain.AuditLog to DTO.
func ToListAuditLogsResponse(es []domain.AuditLog, nextToken *string) ListAuditLogsResponse {
	list := make([]AuditLogResponse, len(es))
	for i, e := range es {
		list[i] = ToAuditLogResponse(&e)
	}
	return ListAuditLogsResponse{AuditLogs: list, NextToken: nextToken}
}
