package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
	"github.com/crewstack/workforce_app/internal/middleware"
)

// assetHandler handles HTTP requests for tenant assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.POST("/:assetID/assign", h.assignAsset)
		assets.POST("/:assetID/release", h.releaseAsset)
		assets.DELETE("/:assetID", h.deactivateAsset)
	}
}

// createAsset godoc
// @Summary Create an asset
// @Description Registers a new asset in the tenant, consuming one unit of the asset quota.
// @Tags assets
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create asset", slog.String("error", err.Error()))
		respondWithError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List assets
// @Description Retrieves a paginated list of the tenant's assets.
// @Tags assets
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAssetsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	assets, err := h.assetService.ListAssets(c.Request.Context(), tenantID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetsResponse(assets))
}

// getAsset godoc
// @Summary Get an asset
// @Description Retrieves a single asset by ID within the tenant.
// @Tags assets
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets/{assetID} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), tenantID, c.Param("assetID"))
	if err != nil {
		respondWithError(c, err, "Failed to get asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Updates asset details. Moving an asset into or out of assigned status must go through the assign and release actions.
// @Tags assets
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assetID path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets/{assetID} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), tenantID, c.Param("assetID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// assignAsset godoc
// @Summary Check out an asset to a worker
// @Description Hands an available asset to an active worker.
// @Tags assets
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assetID path string true "Asset ID"
// @Param assignment body dto.AssignAssetRequest true "Target worker"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets/{assetID}/assign [post]
func (h *assetHandler) assignAsset(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.AssignAssetToWorker(c.Request.Context(), tenantID, c.Param("assetID"), req.WorkerID, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to assign asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// releaseAsset godoc
// @Summary Return an asset to the pool
// @Description Releases an assigned asset from its worker and marks it available.
// @Tags assets
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets/{assetID}/release [post]
func (h *assetHandler) releaseAsset(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	asset, err := h.assetService.ReleaseAssetFromWorker(c.Request.Context(), tenantID, c.Param("assetID"), requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to release asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deactivateAsset godoc
// @Summary Deactivate an asset
// @Description Soft deletes an asset and releases its quota unit. Assets still checked out to a worker must be released first.
// @Tags assets
// @Param tenantID path string true "Tenant ID"
// @Param assetID path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/assets/{assetID} [delete]
func (h *assetHandler) deactivateAsset(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.assetService.DeactivateAsset(c.Request.Context(), tenantID, c.Param("assetID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to deactivate asset")
		return
	}

	c.Status(http.StatusNoContent)
}
