package mapping

import (
	"encoding/json"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/models"
)

// ToModelAssignment converts a domain JobAssignment to its model form,
// serializing the data map to JSONB bytes.
func ToModelAssignment(d domain.JobAssignment) (models.JobAssignment, error) {
	data := d.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return models.JobAssignment{}, err
	}
	return models.JobAssignment{
		AssignmentID: d.AssignmentID,
		TenantID:     d.TenantID,
		JobID:        d.JobID,
		WorkerID:     d.WorkerID,
		Role:         d.Role,
		Status:       string(d.Status),
		AssignedAt:   d.AssignedAt,
		CompletedAt:  d.CompletedAt,
		Notes:        d.Notes,
		Data:         raw,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainAssignment converts a model JobAssignment back to domain form.
// A null or empty data column becomes an empty map.
func ToDomainAssignment(m models.JobAssignment) (domain.JobAssignment, error) {
	data := map[string]any{}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return domain.JobAssignment{}, err
		}
	}
	return domain.JobAssignment{
		AssignmentID: m.AssignmentID,
		TenantID:     m.TenantID,
		JobID:        m.JobID,
		WorkerID:     m.WorkerID,
		Role:         m.Role,
		Status:       domain.AssignmentStatus(m.Status),
		AssignedAt:   m.AssignedAt,
		CompletedAt:  m.CompletedAt,
		Notes:        m.Notes,
		Data:         data,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainAssignmentSlice converts a slice of model assignments.
func ToDomainAssignmentSlice(ms []models.JobAssignment) ([]domain.JobAssignment, error) {
	ds := make([]domain.JobAssignment, len(ms))
	for i, m := range ms {
		d, err := ToDomainAssignment(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
