package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/middleware"
)

// assignmentHandler handles HTTP requests for the assignment lifecycle.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: as}
}

// RegisterAssignmentRoutes registers assignment routes under the tenant
// group. Status changes are modelled as explicit actions rather than a
// generic PATCH so each transition keeps its own preconditions.
func RegisterAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("/:assignmentID", h.getAssignment)
		assignments.POST("/:assignmentID/start", h.startAssignment)
		assignments.POST("/:assignmentID/complete", h.completeAssignment)
		assignments.POST("/:assignmentID/cancel", h.cancelAssignment)
		assignments.POST("/:assignmentID/reassign", h.reassignAssignment)
		assignments.PATCH("/:assignmentID/notes", h.updateAssignmentNotes)
		assignments.DELETE("/:assignmentID", h.deleteAssignment)
	}
}

// createAssignment godoc
// @Summary Assign a worker to a job
// @Description Creates an assignment in assigned status. The worker must be active, under their concurrent assignment cap, and not already on the job.
// @Tags assignments
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create assignment", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create assignment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// getAssignment godoc
// @Summary Get an assignment
// @Description Retrieves a single assignment by ID within the tenant.
// @Tags assignments
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID} [get]
func (h *assignmentHandler) getAssignment(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), tenantID, c.Param("assignmentID"))
	if err != nil {
		respondWithError(c, err, "Failed to get assignment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// startAssignment godoc
// @Summary Start an assignment
// @Description Moves an assignment from assigned to in_progress.
// @Tags assignments
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID}/start [post]
func (h *assignmentHandler) startAssignment(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.StartAssignment(c.Request.Context(), tenantID, c.Param("assignmentID"), requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to start assignment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// completeAssignment godoc
// @Summary Complete an assignment
// @Description Moves an assignment from in_progress to completed, merging any supplied details into its data. Completing the job's last open assignment completes the job.
// @Tags assignments
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Param payload body dto.CompleteAssignmentRequest false "Optional completion details"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID}/complete [post]
func (h *assignmentHandler) completeAssignment(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CompleteAssignmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	assignment, err := h.assignmentService.CompleteAssignment(c.Request.Context(), tenantID, c.Param("assignmentID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to complete assignment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// cancelAssignment godoc
// @Summary Cancel an assignment
// @Description Moves an open assignment to cancelled. The cancellation reason is mandatory and is stamped into the assignment's data.
// @Tags assignments
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Param cancellation body dto.CancelAssignmentRequest true "Cancellation reason"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID}/cancel [post]
func (h *assignmentHandler) cancelAssignment(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CancelAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.CancelAssignment(c.Request.Context(), tenantID, c.Param("assignmentID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to cancel assignment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// reassignAssignment godoc
// @Summary Re-queue a cancelled assignment
// @Description Moves a cancelled assignment back to assigned, subject to the same worker availability and cap checks as creation.
// @Tags assignments
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID}/reassign [post]
func (h *assignmentHandler) reassignAssignment(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.ReassignAssignment(c.Request.Context(), tenantID, c.Param("assignmentID"), requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to reassign assignment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// updateAssignmentNotes godoc
// @Summary Update assignment notes
// @Description Replaces the assignment's free-form notes. An empty string clears them.
// @Tags assignments
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Param payload body dto.UpdateAssignmentNotesRequest true "New notes"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID}/notes [patch]
func (h *assignmentHandler) updateAssignmentNotes(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.UpdateAssignmentNotes(c.Request.Context(), tenantID, c.Param("assignmentID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update assignment notes")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// deleteAssignment godoc
// @Summary Delete an assignment
// @Description Removes a non-completed assignment. Completed assignments belong to the job record and cannot be deleted.
// @Tags assignments
// @Param tenantID path string true "Tenant ID"
// @Param assignmentID path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assignments/{assignmentID} [delete]
func (h *assignmentHandler) deleteAssignment(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), tenantID, c.Param("assignmentID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to delete assignment")
		return
	}

	c.Status(http.StatusNoContent)
}
