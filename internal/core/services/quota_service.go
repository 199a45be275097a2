package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewstack/workforce_app/internal/apperrors"
	"github.com/crewstack/workforce_app/internal/core/domain"
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/platform/metrics"
)

var (
	ErrUnknownQuotaType = errors.New("unknown quota type")
)

// quotaService is the gate every resource creation passes through. Tenants
// without a configured quota row for a type are unrestricted for that type.
type quotaService struct {
	BaseService
	quotaRepo        portsrepo.QuotaRepositoryFacade
	auditSvc         portssvc.AuditSvcFacade
	alertThresholdPc float64
}

// NewQuotaService creates a new QuotaService. alertThresholdPercent is the
// usage percentage at which a quota starts producing warning alerts.
func NewQuotaService(quotaRepo portsrepo.QuotaRepositoryFacade, auditSvc portssvc.AuditSvcFacade, alertThresholdPercent float64) portssvc.QuotaSvcFacade {
	return &quotaService{
		quotaRepo:        quotaRepo,
		auditSvc:         auditSvc,
		alertThresholdPc: alertThresholdPercent,
	}
}

// Ensure quotaService implements the portssvc.QuotaSvcFacade interface
var _ portssvc.QuotaSvcFacade = (*quotaService)(nil)

func (s *quotaService) GetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (*domain.TenantQuota, error) {
	if !quotaType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	return s.quotaRepo.FindQuota(ctx, tenantID, quotaType)
}

func (s *quotaService) ListQuotas(ctx context.Context, tenantID string) ([]domain.TenantQuota, error) {
	return s.quotaRepo.ListQuotas(ctx, tenantID)
}

// CheckQuota reports whether one more unit fits, without consuming it. An
// unconfigured quota type means no limit is enforced.
func (s *quotaService) CheckQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType) (bool, error) {
	if !quotaType.IsValid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	quota, err := s.quotaRepo.FindQuota(ctx, tenantID, quotaType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return quota.HasCapacity(), nil
}

// ListQuotaAlerts returns the tenant's quotas at or above the warning
// threshold, tagged with warning or critical severity.
func (s *quotaService) ListQuotaAlerts(ctx context.Context, tenantID string) ([]domain.QuotaAlert, error) {
	quotas, err := s.quotaRepo.FindQuotasAboveUsage(ctx, tenantID, int(s.alertThresholdPc))
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.QuotaAlert, 0, len(quotas))
	for _, q := range quotas {
		severity, ok := q.AlertSeverity(s.alertThresholdPc)
		if !ok {
			continue
		}
		alerts = append(alerts, domain.QuotaAlert{TenantQuota: q, Severity: severity})
	}
	return alerts, nil
}

// ConsumeQuota atomically claims one unit. The repository performs the
// increment-and-compare in a single statement, so concurrent callers cannot
// overshoot the limit. An unconfigured quota type consumes nothing and
// succeeds.
func (s *quotaService) ConsumeQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error) {
	if !quotaType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}

	now := time.Now()
	quota, err := s.quotaRepo.ConsumeQuota(ctx, tenantID, quotaType, requestingUserID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No quota configured, allowing", "quota_type", string(quotaType))
			return nil, nil
		}
		if errors.Is(err, apperrors.ErrQuotaExceeded) {
			metrics.QuotaDenialsTotal.WithLabelValues(string(quotaType)).Inc()
			s.LogWarn(ctx, "Quota limit reached", "tenant_id", tenantID, "quota_type", string(quotaType))
		}
		return nil, err
	}

	if severity, ok := quota.AlertSeverity(s.alertThresholdPc); ok {
		s.LogWarn(ctx, "Quota usage high",
			"tenant_id", tenantID,
			"quota_type", string(quotaType),
			"usage", quota.CurrentUsage,
			"limit", quota.QuotaLimit,
			"severity", string(severity),
		)
	}

	return quota, nil
}

// ReleaseQuota returns one previously consumed unit. Missing quota rows are
// ignored so deletions of unmetered resources stay cheap.
func (s *quotaService) ReleaseQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) error {
	if !quotaType.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	_, err := s.quotaRepo.ReleaseQuota(ctx, tenantID, quotaType, requestingUserID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (s *quotaService) SetQuotaLimit(ctx context.Context, tenantID string, quotaType domain.QuotaType, limit int64, requestingUserID string) (*domain.TenantQuota, error) {
	if !quotaType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	err := s.quotaRepo.UpdateQuotaLimit(ctx, tenantID, quotaType, limit, requestingUserID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No row yet for this type; create one.
			quota := domain.TenantQuota{
				QuotaID:      uuid.NewString(),
				TenantID:     tenantID,
				QuotaType:    quotaType,
				QuotaLimit:   limit,
				CurrentUsage: 0,
				Status:       domain.QuotaOK,
				NextResetAt:  nextMonthlyReset(now),
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     requestingUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: requestingUserID,
				},
			}
			if saveErr := s.quotaRepo.SaveQuota(ctx, quota); saveErr != nil {
				return nil, saveErr
			}
		} else {
			return nil, err
		}
	}

	quota, err := s.quotaRepo.FindQuota(ctx, tenantID, quotaType)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "quota.limit_set", string(quotaType), map[string]any{
		"quota_type": string(quotaType),
		"limit":      limit,
	})

	return quota, nil
}

// IncrementQuota is the admin adjustment path. Unlike ConsumeQuota it never
// refuses, it just moves the counter and lets the sticky status follow.
func (s *quotaService) IncrementQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, amount int64, requestingUserID string) (*domain.TenantQuota, error) {
	if !quotaType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: increment amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	quota, err := s.quotaRepo.IncrementQuotaUsage(ctx, tenantID, quotaType, amount, requestingUserID, time.Now())
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, requestingUserID, "quota.usage_incremented", string(quotaType), map[string]any{
		"quota_type": string(quotaType),
		"amount":     amount,
		"usage":      quota.CurrentUsage,
	})

	return quota, nil
}

// ResetQuota zeroes a single quota's usage on admin request.
func (s *quotaService) ResetQuota(ctx context.Context, tenantID string, quotaType domain.QuotaType, requestingUserID string) (*domain.TenantQuota, error) {
	if !quotaType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuotaType, quotaType)
	}
	if _, err := s.AuthorizeUser(ctx, tenantID, requestingUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	quota, err := s.quotaRepo.ResetQuota(ctx, tenantID, quotaType, requestingUserID, time.Now())
	if err != nil {
		return nil, err
	}

	metrics.QuotaResetsTotal.Inc()
	s.recordAudit(ctx, tenantID, requestingUserID, "quota.reset", string(quotaType), map[string]any{
		"quota_type": string(quotaType),
	})

	return quota, nil
}

// SeedDefaultQuotas creates one unlimited quota row per metered type for a
// fresh tenant.
func (s *quotaService) SeedDefaultQuotas(ctx context.Context, tenantID string, creatorUserID string) error {
	now := time.Now()
	resetAt := nextMonthlyReset(now)
	for _, quotaType := range domain.MeteredQuotaTypes {
		quota := domain.TenantQuota{
			QuotaID:      uuid.NewString(),
			TenantID:     tenantID,
			QuotaType:    quotaType,
			QuotaLimit:   domain.UnlimitedQuota,
			CurrentUsage: 0,
			Status:       domain.QuotaOK,
			NextResetAt:  resetAt,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.quotaRepo.SaveQuota(ctx, quota); err != nil {
			return fmt.Errorf("failed to seed quota %s: %w", quotaType, err)
		}
	}
	return nil
}

// ResetDueQuotas zeroes usage for every quota past its reset timestamp.
func (s *quotaService) ResetDueQuotas(ctx context.Context) (int64, error) {
	count, err := s.quotaRepo.ResetQuotaUsage(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		metrics.QuotaResetsTotal.Add(float64(count))
		s.LogInfo(ctx, "Quota usage reset", "rows", count)
	}
	return count, nil
}

// nextMonthlyReset returns the first day of the next month at midnight UTC.
func nextMonthlyReset(now time.Time) time.Time {
	year, month, _ := now.UTC().Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

func (s *quotaService) recordAudit(ctx context.Context, tenantID, userID, action, entityID string, newValues map[string]any) {
	if s.auditSvc == nil {
		return
	}
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityKind: domain.EntityQuota,
		EntityID:   entityID,
		NewValues:  newValues,
		CreatedAt:  time.Now(),
	}
	if err := s.auditSvc.RecordAction(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry", "action", action)
	}
}
