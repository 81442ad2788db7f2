package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// terminalHandler handles HTTP requests for terminal identity resolution.
type terminalHandler struct {
	registry portssvc.TerminalRegistrySvc
}

// newTerminalHandler creates a new terminalHandler.
func newTerminalHandler(registry portssvc.TerminalRegistrySvc) *terminalHandler {
	return &terminalHandler{registry: registry}
}

// registerTerminalRoutes registers terminal registry routes.
func registerTerminalRoutes(rg *gin.RouterGroup, registry portssvc.TerminalRegistrySvc) {
	h := newTerminalHandler(registry)

	locationTerminals := rg.Group("/locations/:location_id/terminals")
	{
		locationTerminals.GET("", h.listTerminals)
		locationTerminals.POST("/resolve", h.resolveTerminal)
	}
}

// listTerminals godoc
// @Summary List active terminals
// @Tags terminals
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Success 200 {object} dto.ListTerminalsResponse
// @Security BearerAuth
// @Router /locations/{location_id}/terminals [get]
func (h *terminalHandler) listTerminals(c *gin.Context) {
	terminals, err := h.registry.ListActiveTerminals(c.Request.Context(), c.Param("location_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTerminalsResponse(terminals))
}

// resolveTerminal godoc
// @Summary Resolve a terminal's identity
// @Description Applies the three-tier resolution policy: exact system-name match, explicit selection, then a candidate list for manual choice. With confirm set, a manual selection backfills the reported hostname onto the terminal.
// @Tags terminals
// @Accept  json
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Param   resolve body dto.ResolveTerminalRequest true "Resolution hints"
// @Success 200 {object} dto.TerminalResolutionResponse
// @Failure 404 {object} map[string]string "TerminalNotFound"
// @Security BearerAuth
// @Router /locations/{location_id}/terminals/resolve [post]
func (h *terminalHandler) resolveTerminal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResolveTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveTerminal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"code": "ValidationFailed", "error": "Invalid request format: " + err.Error()})
		return
	}

	requestedBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resolution, err := h.registry.ResolveTerminal(c.Request.Context(), c.Param("location_id"), req.Hostname, req.TerminalID, req.Confirm, requestedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTerminalResolutionResponse(resolution))
}
