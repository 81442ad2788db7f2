package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// sessionHandler handles HTTP requests for the cashier session lifecycle.
type sessionHandler struct {
	lifecycle     portssvc.LifecycleSvcFacade
	sessionLedger portssvc.SessionLedgerSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(lifecycle portssvc.LifecycleSvcFacade, sessionLedger portssvc.SessionLedgerSvcFacade) *sessionHandler {
	return &sessionHandler{lifecycle: lifecycle, sessionLedger: sessionLedger}
}

// registerSessionRoutes registers cashier session routes.
func registerSessionRoutes(rg *gin.RouterGroup, lifecycle portssvc.LifecycleSvcFacade, sessionLedger portssvc.SessionLedgerSvcFacade) {
	h := newSessionHandler(lifecycle, sessionLedger)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("/:session_id", h.getSession)
		sessions.POST("/:session_id/close", h.closeSession)
	}

	rg.GET("/terminals/:terminal_id/open-session", h.getOpenSessionForTerminal)
}

// openSession godoc
// @Summary Open a cashier session
// @Description Opens a session on a terminal against the location's active business day. The terminal is identified directly or resolved from a hostname token.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "InvalidOpeningCash"
// @Failure 404 {object} map[string]string "TerminalNotFound"
// @Failure 409 {object} map[string]string "NoActiveDay or TerminalBusy"
// @Security BearerAuth
// @Router /sessions [post]
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"code": "ValidationFailed", "error": "Invalid request format: " + err.Error()})
		return
	}

	requestedBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.lifecycle.OpenCashierSession(c.Request.Context(), req, requestedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getSession godoc
// @Summary Get a session
// @Tags sessions
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /sessions/{session_id} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	session, err := h.sessionLedger.GetSessionByID(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// closeSession godoc
// @Summary Close a cashier session
// @Description Closes an open session, recording the counted closing cash. Cash-up must be completed by the caller beforehand.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   close body dto.CloseSessionRequest true "Closing details"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} map[string]string "SessionNotOpen"
// @Security BearerAuth
// @Router /sessions/{session_id}/close [post]
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"code": "ValidationFailed", "error": "Invalid request format: " + err.Error()})
		return
	}

	closedBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.lifecycle.CloseCashierSession(c.Request.Context(), c.Param("session_id"), req, closedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// getOpenSessionForTerminal godoc
// @Summary Get the open session for a terminal
// @Description Read-only pre-flight for conflict display. OpenSession remains the authoritative check.
// @Tags sessions
// @Produce  json
// @Param   terminal_id path string true "Terminal ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Terminal idle"
// @Security BearerAuth
// @Router /terminals/{terminal_id}/open-session [get]
func (h *sessionHandler) getOpenSessionForTerminal(c *gin.Context) {
	session, err := h.sessionLedger.GetOpenSessionForTerminal(c.Request.Context(), c.Param("terminal_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
