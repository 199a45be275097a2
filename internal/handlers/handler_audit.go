package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// auditHandler handles HTTP requests for the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	auditLogs := rg.Group("/audit-logs")
	{
		auditLogs.GET("", h.listAuditLogs)
		auditLogs.DELETE("/:auditID", h.deleteAuditLog)
	}
}

// listAuditLogs godoc
// @Summary List audit entries
// @Description Retrieves a token-paginated list of audit entries, optionally filtered by entity kind and ID.
// @Tags audit
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entityKind query string false "Filter by entity kind"
// @Param entityID query string false "Filter by entity ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.auditService.ListAuditLogs(c.Request.Context(), tenantID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list audit logs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteAuditLog godoc
// @Summary Delete an audit entry
// @Description Removes an audit entry. The removal itself is recorded. Admin only.
// @Tags audit
// @Param tenantID path string true "Tenant ID"
// @Param auditID path string true "Audit entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/audit-logs/{auditID} [delete]
func (h *auditHandler) deleteAuditLog(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.auditService.DeleteAuditLog(c.Request.Context(), tenantID, c.Param("auditID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to delete audit log")
		return
	}

	c.Status(http.StatusNoContent)
}
