package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/middleware"
)

// jobHandler handles HTTP requests related to jobs.
type jobHandler struct {
	jobService        portssvc.JobSvcFacade
	assignmentService portssvc.AssignmentSvcFacade
}

func newJobHandler(js portssvc.JobSvcFacade, as portssvc.AssignmentSvcFacade) *jobHandler {
	return &jobHandler{
		jobService:        js,
		assignmentService: as,
	}
}

// registerJobRoutes registers job routes under the tenant group, including
// the job-scoped assignment listing.
func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade, assignmentService portssvc.AssignmentSvcFacade) {
	h := newJobHandler(jobService, assignmentService)

	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.createJob)
		jobs.GET("", h.listJobs)
		jobs.GET("/:jobID", h.getJob)
		jobs.PUT("/:jobID", h.updateJob)
		jobs.POST("/:jobID/cancel", h.cancelJob)
		jobs.DELETE("/:jobID", h.deactivateJob)
		jobs.GET("/:jobID/assignments", h.listJobAssignments)
	}
}

// createJob godoc
// @Summary Create a job
// @Description Creates a job in pending status. Requires the MANAGER role and consumes one unit of the job quota.
// @Tags jobs
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs [post]
func (h *jobHandler) createJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJob", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create job", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

// listJobs godoc
// @Summary List jobs
// @Description Retrieves a token-paginated list of the tenant's jobs, newest first, optionally filtered by status.
// @Tags jobs
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param status query string false "Filter by status" Enums(pending, active, completed, cancelled)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListJobsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.jobService.ListJobs(c.Request.Context(), tenantID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJob godoc
// @Summary Get a job
// @Description Retrieves a single job by ID within the tenant.
// @Tags jobs
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs/{jobID} [get]
func (h *jobHandler) getJob(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByID(c.Request.Context(), tenantID, c.Param("jobID"))
	if err != nil {
		respondWithError(c, err, "Failed to get job")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// updateJob godoc
// @Summary Update a job
// @Description Updates job details. Finished jobs cannot be edited. Requires the MANAGER role.
// @Tags jobs
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param jobID path string true "Job ID"
// @Param job body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs/{jobID} [put]
func (h *jobHandler) updateJob(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), tenantID, c.Param("jobID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update job")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// cancelJob godoc
// @Summary Cancel a job
// @Description Cancels a pending or active job with no open assignments. Requires the MANAGER role.
// @Tags jobs
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs/{jobID}/cancel [post]
func (h *jobHandler) cancelJob(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	job, err := h.jobService.CancelJob(c.Request.Context(), tenantID, c.Param("jobID"), requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to cancel job")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// deactivateJob godoc
// @Summary Deactivate a job
// @Description Soft deletes a job and releases its quota unit. Active and completed jobs cannot be removed.
// @Tags jobs
// @Param tenantID path string true "Tenant ID"
// @Param jobID path string true "Job ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs/{jobID} [delete]
func (h *jobHandler) deactivateJob(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.jobService.DeactivateJob(c.Request.Context(), tenantID, c.Param("jobID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to deactivate job")
		return
	}

	c.Status(http.StatusNoContent)
}

// listJobAssignments godoc
// @Summary List a job's assignments
// @Description Retrieves every assignment attached to the job.
// @Tags jobs
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/jobs/{jobID}/assignments [get]
func (h *jobHandler) listJobAssignments(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListAssignmentsByJob(c.Request.Context(), tenantID, c.Param("jobID"))
	if err != nil {
		respondWithError(c, err, "Failed to list assignments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssignmentsResponse(assignments, nil))
}
