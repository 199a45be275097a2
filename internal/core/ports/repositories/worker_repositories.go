package repositories

import (
	"context"
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
)

// WorkerReader defines read operations for worker data
type WorkerReader interface {
	// FindWorkerByID retrieves a specific worker by ID, scoped to a tenant.
	FindWorkerByID(ctx context.Context, tenantID, workerID string) (*domain.Worker, error)

	// ListWorkers retrieves a paginated list of workers in a tenant.
	ListWorkers(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Worker, error)
}

// WorkerWriter defines write operations for worker data
type WorkerWriter interface {
	// SaveWorker persists a new worker.
	SaveWorker(ctx context.Context, worker domain.Worker) error

	// UpdateWorker updates an existing worker's details.
	UpdateWorker(ctx context.Context, worker domain.Worker) error
}

// WorkerLifecycleManager defines operations for managing worker lifecycle
type WorkerLifecycleManager interface {
	// MarkWorkerDeleted marks a worker as deleted (soft delete).
	MarkWorkerDeleted(ctx context.Context, tenantID, workerID string, deletedAt time.Time, deletedBy string) error
}

// WorkerRepositoryFacade combines all worker-related repository interfaces
type WorkerRepositoryFacade interface {
	WorkerReader
	WorkerWriter
	WorkerLifecycleManager
}
