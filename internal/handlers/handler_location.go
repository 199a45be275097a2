package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crewstack/workforce_app/internal/core/ports/services"
	"github.com/crewstack/workforce_app/internal/dto"
)

// locationHandler handles HTTP requests related to locations.
type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{locationService: ls}
}

// registerLocationRoutes registers location routes under the tenant group.
func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("", h.listLocations)
		locations.GET("/:locationID", h.getLocation)
		locations.PUT("/:locationID", h.updateLocation)
		locations.DELETE("/:locationID", h.deactivateLocation)
	}
}

// createLocation godoc
// @Summary Create a location
// @Description Creates a location. Requires the MANAGER role.
// @Tags locations
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/locations [post]
func (h *locationHandler) createLocation(c *gin.Context) {
	creatorUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondWithError(c, err, "Failed to create location")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List locations
// @Description Retrieves a paginated list of the tenant's locations.
// @Tags locations
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListLocationsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/locations [get]
func (h *locationHandler) listLocations(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	locations, err := h.locationService.ListLocations(c.Request.Context(), tenantID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list locations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLocationsResponse(locations))
}

// getLocation godoc
// @Summary Get a location
// @Description Retrieves a single location by ID within the tenant.
// @Tags locations
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param locationID path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/locations/{locationID} [get]
func (h *locationHandler) getLocation(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	location, err := h.locationService.GetLocationByID(c.Request.Context(), tenantID, c.Param("locationID"))
	if err != nil {
		respondWithError(c, err, "Failed to get location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// updateLocation godoc
// @Summary Update a location
// @Description Updates location details. Requires the MANAGER role.
// @Tags locations
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param locationID path string true "Location ID"
// @Param location body dto.UpdateLocationRequest true "Fields to update"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/locations/{locationID} [put]
func (h *locationHandler) updateLocation(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), tenantID, c.Param("locationID"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// deactivateLocation godoc
// @Summary Deactivate a location
// @Description Soft deletes a location. Requires the MANAGER role.
// @Tags locations
// @Param tenantID path string true "Tenant ID"
// @Param locationID path string true "Location ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/locations/{locationID} [delete]
func (h *locationHandler) deactivateLocation(c *gin.Context) {
	requestingUserID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.locationService.DeactivateLocation(c.Request.Context(), tenantID, c.Param("locationID"), requestingUserID); err != nil {
		respondWithError(c, err, "Failed to deactivate location")
		return
	}

	c.Status(http.StatusNoContent)
}
