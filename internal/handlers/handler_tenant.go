package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/middleware"
)

// tenantHandler handles HTTP requests related to the tenant itself.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes for the tenant resource itself. The
// group is already scoped to /tenants/:tenantID.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	rg.GET("", h.getTenant)
	rg.PUT("", h.updateTenant)
	rg.DELETE("", h.deactivateTenant)
}

// getTenant godoc
// @Summary Get tenant details
// @Description Retrieves the calling user's tenant.
// @Tags tenants
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		respondWithError(c, err, "Failed to get tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateTenant godoc
// @Summary Update tenant details
// @Description Updates the tenant's name or status. Requires the ADMIN role.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param tenant body dto.UpdateTenantRequest true "Fields to update"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		logger.Error("Failed to update tenant", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to update tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// deactivateTenant godoc
// @Summary Deactivate tenant
// @Description Soft deletes the tenant. Requires the ADMIN role.
// @Tags tenants
// @Param tenantID path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID} [delete]
func (h *tenantHandler) deactivateTenant(c *gin.Context) {
	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), tenantID, userID); err != nil {
		respondWithError(c, err, "Failed to deactivate tenant")
		return
	}

	c.Status(http.StatusNoContent)
}
