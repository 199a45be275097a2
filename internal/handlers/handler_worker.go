package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/middleware"
)

// workerHandler handles HTTP requests related to workers.
type workerHandler struct {
	workerService     portssvc.WorkerSvcFacade
	assignmentService portssvc.AssignmentSvcFacade
	assetService      portssvc.AssetSvcFacade
}

func newWorkerHandler(ws portssvc.WorkerSvcFacade, as portssvc.AssignmentSvcFacade, assets portssvc.AssetSvcFacade) *workerHandler {
	return &workerHandler{
		workerService:     ws,
		assignmentService: as,
		assetService:      assets,
	}
}

// registerWorkerRoutes registers worker routes under the tenant group,
// including the worker-scoped assignment and asset listings.
func registerWorkerRoutes(rg *gin.RouterGroup, workerService portssvc.WorkerSvcFacade, assignmentService portssvc.AssignmentSvcFacade, assetService portssvc.AssetSvcFacade) {
	h := newWorkerHandler(workerService, assignmentService, assetService)

	workers := rg.Group("/workers")
	{
		workers.POST("", h.createWorker)
		workers.GET("", h.listWorkers)
		workers.GET("/:workerID", h.getWorker)
		workers.PUT("/:workerID", h.updateWorker)
		workers.DELETE("/:workerID", h.deactivateWorker)
		workers.GET("/:workerID/assignments", h.listWorkerAssignments)
		workers.GET("/:workerID/assets", h.listWorkerAssets)
	}
}

// createWorker godoc
// @Summary Create a worker
// @Description Creates a worker profile for an existing user. Requires the MANAGER role and consumes one unit of the worker quota.
// @Tags workers
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param worker body dto.CreateWorkerRequest true "Worker details"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers [post]
func (h *workerHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create worker", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create worker")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkerResponse(worker))
}

// listWorkers godoc
// @Summary List workers
// @Description Retrieves a paginated list of the tenant's workers.
// @Tags workers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListWorkersResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers [get]
func (h *workerHandler) listWorkers(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	workers, err := h.workerService.ListWorkers(c.Request.Context(), tenantID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list workers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkersResponse(workers))
}

// getWorker godoc
// @Summary Get a worker
// @Description Retrieves a single worker by ID within the tenant.
// @Tags workers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param workerID path string true "Worker ID"
// @Success 200 {object} dto.WorkerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers/{workerID} [get]
func (h *workerHandler) getWorker(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	worker, err := h.workerService.GetWorkerByID(c.Request.Context(), tenantID, c.Param("workerID"))
	if err != nil {
		respondWithError(c, err, "Failed to get worker")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// updateWorker godoc
// @Summary Update a worker
// @Description Updates worker details. Requires the MANAGER role.
// @Tags workers
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param workerID path string true "Worker ID"
// @Param worker body dto.UpdateWorkerRequest true "Fields to update"
// @Success 200 {object} dto.WorkerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers/{workerID} [put]
func (h *workerHandler) updateWorker(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	worker, err := h.workerService.UpdateWorker(c.Request.Context(), tenantID, c.Param("workerID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update worker")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// deactivateWorker godoc
// @Summary Deactivate a worker
// @Description Soft deletes a worker and releases their quota unit. Workers with open assignments cannot be removed.
// @Tags workers
// @Param tenantID path string true "Tenant ID"
// @Param workerID path string true "Worker ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers/{workerID} [delete]
func (h *workerHandler) deactivateWorker(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.workerService.DeactivateWorker(c.Request.Context(), tenantID, c.Param("workerID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to deactivate worker")
		return
	}

	c.Status(http.StatusNoContent)
}

// listWorkerAssignments godoc
// @Summary List a worker's assignments
// @Description Retrieves a token-paginated list of the worker's assignments, newest first.
// @Tags workers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param workerID path string true "Worker ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers/{workerID}/assignments [get]
func (h *workerHandler) listWorkerAssignments(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.assignmentService.ListAssignmentsByWorker(c.Request.Context(), tenantID, c.Param("workerID"), params)
	if err != nil {
		respondWithError(c, err, "Failed to list assignments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listWorkerAssets godoc
// @Summary List a worker's assets
// @Description Retrieves the assets currently checked out to the worker.
// @Tags workers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param workerID path string true "Worker ID"
// @Success 200 {object} dto.ListAssetsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/workers/{workerID}/assets [get]
func (h *workerHandler) listWorkerAssets(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	assets, err := h.assetService.ListAssetsByWorker(c.Request.Context(), tenantID, c.Param("workerID"))
	if err != nil {
		respondWithError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetsResponse(assets))
}
