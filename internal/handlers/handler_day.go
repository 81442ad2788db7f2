package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// dayHandler handles HTTP requests for the business day lifecycle.
type dayHandler struct {
	lifecycle portssvc.LifecycleSvcFacade
}

// newDayHandler creates a new dayHandler.
func newDayHandler(lifecycle portssvc.LifecycleSvcFacade) *dayHandler {
	return &dayHandler{lifecycle: lifecycle}
}

// registerDayRoutes registers business day routes.
func registerDayRoutes(rg *gin.RouterGroup, lifecycle portssvc.LifecycleSvcFacade) {
	h := newDayHandler(lifecycle)

	locationDays := rg.Group("/locations/:location_id/business-days")
	{
		locationDays.POST("", h.openDay)
		locationDays.GET("/active", h.getActiveDay)
	}

	rg.POST("/business-days/:day_id/close", h.closeDay)
}

// openDay godoc
// @Summary Open a business day
// @Description Opens a new trading day for a location. Only one day may be open per location at a time.
// @Tags business-days
// @Accept  json
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Param   day body dto.OpenDayRequest true "Day details"
// @Success 201 {object} dto.BusinessDayResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "DayAlreadyOpen"
// @Security BearerAuth
// @Router /locations/{location_id}/business-days [post]
func (h *dayHandler) openDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("location_id")

	var req dto.OpenDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenDay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"code": "ValidationFailed", "error": "Invalid request format: " + err.Error()})
		return
	}

	openedBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	day, err := h.lifecycle.OpenBusinessDay(c.Request.Context(), locationID, req, openedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessDayResponse(day))
}

// getActiveDay godoc
// @Summary Get the active business day
// @Description Retrieves the currently open trading day for a location.
// @Tags business-days
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Success 200 {object} dto.BusinessDayResponse
// @Failure 404 {object} map[string]string "No open day"
// @Security BearerAuth
// @Router /locations/{location_id}/business-days/active [get]
func (h *dayHandler) getActiveDay(c *gin.Context) {
	locationID := c.Param("location_id")

	day, err := h.lifecycle.GetActiveBusinessDay(c.Request.Context(), locationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessDayResponse(day))
}

// closeDay godoc
// @Summary Close a business day
// @Description Closes a trading day. Refused while any session hosted by the day is still open.
// @Tags business-days
// @Produce  json
// @Param   day_id path string true "Business day ID"
// @Success 200 {object} dto.BusinessDayResponse
// @Failure 409 {object} map[string]string "OpenSessionsExist"
// @Security BearerAuth
// @Router /business-days/{day_id}/close [post]
func (h *dayHandler) closeDay(c *gin.Context) {
	dayID := c.Param("day_id")

	closedBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	day, err := h.lifecycle.CloseBusinessDay(c.Request.Context(), dayID, closedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessDayResponse(day))
}
