package mapping

import (
	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/models"
)

// ToModelJob converts a domain Job to its model form.
func ToModelJob(d domain.Job) models.Job {
	return models.Job{
		JobID:          d.JobID,
		TenantID:       d.TenantID,
		LocationID:     d.LocationID,
		Title:          d.Title,
		Description:    d.Description,
		Status:         string(d.Status),
		ScheduledStart: d.ScheduledStart,
		ScheduledEnd:   d.ScheduledEnd,
		CompletedAt:    d.CompletedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainJob converts a model Job back to domain form.
func ToDomainJob(m models.Job) domain.Job {
	return domain.Job{
		JobID:          m.JobID,
		TenantID:       m.TenantID,
		LocationID:     m.LocationID,
		Title:          m.Title,
		Description:    m.Description,
		Status:         domain.JobStatus(m.Status),
		ScheduledStart: m.ScheduledStart,
		ScheduledEnd:   m.ScheduledEnd,
		CompletedAt:    m.CompletedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}
}
