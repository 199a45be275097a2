package services

import (
	"context"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/crewstack/workforce_app/internal/dto"
)

// WorkerReaderSvc defines read operations for worker data
type WorkerReaderSvc interface {
	// GetWorkerByID retrieves a specific worker by ID within a tenant.
	GetWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error)

	// ListWorkers retrieves a paginated list of workers in a tenant.
	ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error)
}

// WorkerWriterSvc defines write operations for worker data
type WorkerWriterSvc interface {
	// CreateWorker persists a new worker, consuming one unit of the
	// tenant's worker quota.
	CreateWorker(ctx context.Context, tenantID string, req dto.CreateWorkerRequest, creatorUserID string) (*domain.Worker, error)

	// UpdateWorker updates worker details.
	UpdateWorker(ctx context.Context, tenantID, workerID string, req dto.UpdateWorkerRequest, requestingUserID string) (*domain.Worker, error)

	// DeactivateWorker marks a worker as deleted and releases their quota
	// unit. Workers with open assignments cannot be removed.
	DeactivateWorker(ctx context.Context, tenantID, workerID string, requestingUserID string) error
}

// WorkerSvcFacade combines all worker-related service interfaces
type WorkerSvcFacade interface {
	WorkerReaderSvc
	WorkerWriterSvc
}
