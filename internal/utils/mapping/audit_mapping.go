package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/models"
)

// ToModelAuditLog serializes the value snapshots and metadata for storage.
func ToModelAuditLog(d domain.AuditLog) (models.AuditLog, error) {
	oldValues, err := marshalJSONMap(d.OldValues)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := marshalJSONMap(d.NewValues)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("failed to marshal new values: %w", err)
	}
	metadata, err := marshalJSONMap(d.Metadata)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return models.AuditLog{
		AuditID:    d.AuditID,
		TenantID:   d.TenantID,
		UserID:     d.UserID,
		Action:     d.Action,
		EntityKind: string(d.EntityKind),
		EntityID:   d.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  d.IPAddress,
		UserAgent:  d.UserAgent,
		Metadata:   metadata,
		CreatedAt:  d.CreatedAt,
	}, nil
}

func ToDomainAuditLog(m models.AuditLog) (domain.AuditLog, error) {
	oldValues, err := unmarshalJSONMap(m.OldValues)
	if err != nil {
		return domain.AuditLog{}, fmt.Errorf("failed to unmarshal old values: %w", err)
	}
	newValues, err := unmarshalJSONMap(m.NewValues)
	if err != nil {
		return domain.AuditLog{}, fmt.Errorf("failed to unmarshal new values: %w", err)
	}
	metadata, err := unmarshalJSONMap(m.Metadata)
	if err != nil {
		return domain.AuditLog{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return domain.AuditLog{
		AuditID:    m.AuditID,
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		Action:     m.Action,
		EntityKind: domain.EntityKind(m.EntityKind),
		EntityID:   m.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		Metadata:   metadata,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func ToDomainAuditLogSlice(ms []models.AuditLog) ([]domain.AuditLog, error) {
	out := make([]domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainAuditLog(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func marshalJSONMap(in map[string]any) ([]byte, error) {
	if in == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(in)
}

func unmarshalJSONMap(in []byte) (map[string]any, error) {
	out := make(map[string]any)
	if len(in) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
