package pgsql

import (
	portsrepo "github.com/crewstack/workforce_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	workerRepo := newPgxWorkerRepository(dbPool)
	locationRepo := newPgxLocationRepository(dbPool)
	jobRepo := newPgxJobRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool)
	quotaRepo := newPgxQuotaRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:     tenantRepo,
		UserRepo:       userRepo,
		WorkerRepo:     workerRepo,
		LocationRepo:   locationRepo,
		JobRepo:        jobRepo,
		AssetRepo:      assetRepo,
		AssignmentRepo: assignmentRepo,
		QuotaRepo:      quotaRepo,
		AuditRepo:      auditRepo,
	}
}
