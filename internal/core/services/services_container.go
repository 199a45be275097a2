package services

import (
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit has no upstream dependencies and everything else records into it.
	container.Audit = NewAuditService(repos.AuditRepo)

	// Quota feeds the tenant service (default seeding) and every metered
	// create path.
	container.Quota = NewQuotaService(repos.QuotaRepo, container.Audit, cfg.QuotaAlertThresholdPercent)

	// Tenant is the authorizer the remaining services lean on.
	container.Tenant = NewTenantService(repos.TenantRepo, repos.UserRepo, container.Quota, container.Audit)

	// Quota and audit are built before the tenant service exists, so their
	// authorizer is wired up afterwards.
	if qs, ok := container.Quota.(*quotaService); ok {
		qs.TenantAuthorizer = container.Tenant
	}
	if as, ok := container.Audit.(*auditService); ok {
		as.TenantAuthorizer = container.Tenant
	}

	container.User = NewUserService(repos.UserRepo, container.Tenant, container.Quota, container.Audit)
	container.Worker = NewWorkerService(repos.WorkerRepo, repos.UserRepo, repos.AssignmentRepo, container.Tenant, container.Quota, container.Audit)
	container.Location = NewLocationService(repos.LocationRepo, container.Tenant, container.Audit)
	container.Job = NewJobService(repos.JobRepo, repos.LocationRepo, repos.AssignmentRepo, container.Tenant, container.Quota, container.Audit)
	container.Asset = NewAssetService(repos.AssetRepo, repos.WorkerRepo, repos.LocationRepo, container.Tenant, container.Quota, container.Audit)
	container.Assignment = NewAssignmentService(repos.AssignmentRepo, repos.JobRepo, repos.WorkerRepo, container.Tenant, cfg.MaxActiveAssignmentsPerWorker)

	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
