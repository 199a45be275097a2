package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewstack/workforce_app/internal/core/domain"
	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// quotaHandler handles HTTP requests for tenant quotas.
type quotaHandler struct {
	quotaService portssvc.QuotaSvcFacade
}

func newQuotaHandler(qs portssvc.QuotaSvcFacade) *quotaHandler {
	return &quotaHandler{quotaService: qs}
}

// registerQuotaRoutes registers quota routes under the tenant group. Alerts
// live on their own static path so they do not collide with the quotaType
// wildcard.
func registerQuotaRoutes(rg *gin.RouterGroup, quotaService portssvc.QuotaSvcFacade) {
	h := newQuotaHandler(quotaService)

	rg.GET("/quota-alerts", h.listQuotaAlerts)

	quotas := rg.Group("/quotas")
	{
		quotas.GET("", h.listQuotas)
		quotas.GET("/:quotaType", h.getQuota)
		quotas.GET("/:quotaType/check", h.checkQuota)
		quotas.PUT("/:quotaType", h.setQuotaLimit)
		quotas.POST("/:quotaType/increment", h.incrementQuota)
		quotas.POST("/:quotaType/reset", h.resetQuota)
	}
}

func parseQuotaType(c *gin.Context) (domain.QuotaType, bool) {
	quotaType := domain.QuotaType(c.Param("quotaType"))
	if !quotaType.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown quota type: " + string(quotaType)})
		return "", false
	}
	return quotaType, true
}

// listQuotas godoc
// @Summary List quotas
// @Description Retrieves all quota rows for the tenant.
// @Tags quotas
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListQuotasResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas [get]
func (h *quotaHandler) listQuotas(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotas, err := h.quotaService.ListQuotas(c.Request.Context(), tenantID)
	if err != nil {
		respondWithError(c, err, "Failed to list quotas")
		return
	}

	c.JSON(http.StatusOK, dto.ToListQuotasResponse(quotas))
}

// listQuotaAlerts godoc
// @Summary List quota alerts
// @Description Retrieves the tenant's quotas at or above the warning threshold, tagged with a severity.
// @Tags quotas
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListQuotaAlertsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quota-alerts [get]
func (h *quotaHandler) listQuotaAlerts(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	alerts, err := h.quotaService.ListQuotaAlerts(c.Request.Context(), tenantID)
	if err != nil {
		respondWithError(c, err, "Failed to list quota alerts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListQuotaAlertsResponse(alerts))
}

// getQuota godoc
// @Summary Get a quota
// @Description Retrieves a single quota row by type.
// @Tags quotas
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param quotaType path string true "Quota type" Enums(users, workers, jobs, assets)
// @Success 200 {object} dto.QuotaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas/{quotaType} [get]
func (h *quotaHandler) getQuota(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotaType, ok := parseQuotaType(c)
	if !ok {
		return
	}

	quota, err := h.quotaService.GetQuota(c.Request.Context(), tenantID, quotaType)
	if err != nil {
		respondWithError(c, err, "Failed to get quota")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuotaResponse(quota))
}

// checkQuota godoc
// @Summary Check quota capacity
// @Description Reports whether one more unit of the given type fits, without consuming it.
// @Tags quotas
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param quotaType path string true "Quota type" Enums(users, workers, jobs, assets)
// @Success 200 {object} dto.QuotaCheckResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas/{quotaType}/check [get]
func (h *quotaHandler) checkQuota(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotaType, ok := parseQuotaType(c)
	if !ok {
		return
	}

	allowed, err := h.quotaService.CheckQuota(c.Request.Context(), tenantID, quotaType)
	if err != nil {
		respondWithError(c, err, "Failed to check quota")
		return
	}

	c.JSON(http.StatusOK, dto.QuotaCheckResponse{QuotaType: string(quotaType), Allowed: allowed})
}

// setQuotaLimit godoc
// @Summary Set a quota limit
// @Description Sets a new limit for a quota type. A limit of -1 means unlimited. Admin only.
// @Tags quotas
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param quotaType path string true "Quota type" Enums(users, workers, jobs, assets)
// @Param limit body dto.SetQuotaLimitRequest true "New limit"
// @Success 200 {object} dto.QuotaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas/{quotaType} [put]
func (h *quotaHandler) setQuotaLimit(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotaType, ok := parseQuotaType(c)
	if !ok {
		return
	}

	var req dto.SetQuotaLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	quota, err := h.quotaService.SetQuotaLimit(c.Request.Context(), tenantID, quotaType, *req.Limit, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to set quota limit")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuotaResponse(quota))
}

// incrementQuota godoc
// @Summary Increment quota usage
// @Description Adds an amount to a quota's usage as an admin adjustment, bypassing the capacity gate.
// @Tags quotas
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param quotaType path string true "Quota type" Enums(users, workers, jobs, assets)
// @Param increment body dto.IncrementQuotaRequest true "Amount to add"
// @Success 200 {object} dto.QuotaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas/{quotaType}/increment [post]
func (h *quotaHandler) incrementQuota(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotaType, ok := parseQuotaType(c)
	if !ok {
		return
	}

	var req dto.IncrementQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	quota, err := h.quotaService.IncrementQuota(c.Request.Context(), tenantID, quotaType, req.Amount, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to increment quota usage")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuotaResponse(quota))
}

// resetQuota godoc
// @Summary Reset a quota
// @Description Zeroes a quota's usage ahead of schedule and advances its next reset by one month. Admin only.
// @Tags quotas
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param quotaType path string true "Quota type" Enums(users, workers, jobs, assets)
// @Success 200 {object} dto.QuotaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/quotas/{quotaType}/reset [post]
func (h *quotaHandler) resetQuota(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	quotaType, ok := parseQuotaType(c)
	if !ok {
		return
	}

	quota, err := h.quotaService.ResetQuota(c.Request.Context(), tenantID, quotaType, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to reset quota")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuotaResponse(quota))
}
