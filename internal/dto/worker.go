package dto

import (
	"time"

	"github.com/crewstack/workforce_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkerRequest defines data for creating a new worker.
type CreateWorkerRequest struct {
	UserID     string          `json:"userID" binding:"required"`
	HireDate   time.Time       `json:"hireDate" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

// UpdateWorkerRequest defines the data allowed for updating a worker.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateWorkerRequest struct {
	EmploymentStatus *string          `json:"employmentStatus" binding:"omitempty,oneof=active inactive terminated"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate"`
}

// WorkerResponse defines data returned for a worker.
type WorkerResponse struct {
	WorkerID         string          `json:"workerID"`
	TenantID         string          `json:"tenantID"`
	UserID           string          `json:"userID"`
	EmploymentStatus string          `json:"employmentStatus"`
	HireDate         time.Time       `json:"hireDate"`
	HourlyRate       decimal.Decimal `json:"hourlyRate"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToWorkerResponse converts domain.Worker to DTO.
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:         w.WorkerID,
		TenantID:         w.TenantID,
		UserID:           w.UserID,
		EmploymentStatus: string(w.EmploymentStatus),
		HireDate:         w.HireDate,
		HourlyRate:       w.HourlyRate,
		CreatedAt:        w.CreatedAt,
	}
}

// ListWorkersResponse wraps a list of workers.
type ListWorkersResponse struct {
	Workers []WorkerResponse `json:"workers"`
}

// ToListWorkersResponse converts a slice of domain.Worker to DTO.
func ToListWorkersResponse(ws []domain.Worker) ListWorkersResponse {
	list := make([]WorkerResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkerResponse(&w)
	}
	return ListWorkersResponse{Workers: list}
}
