package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/services"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// respondError maps a service error to an HTTP status and a stable error
// code. Every domain rejection keeps its code across releases: clients
// branch on the code, not the message.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var busy *services.TerminalBusyError
	if errors.As(err, &busy) {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "TerminalBusy",
			"error": busy.Error(),
			"conflict": dto.TerminalBusyDetail{
				SessionNumber: busy.SessionNumber,
				CashierID:     busy.CashierID,
				OpenedAt:      busy.OpenedAt,
			},
		})
		return
	}

	var status int
	var code string
	switch {
	case errors.Is(err, services.ErrDayAlreadyOpen):
		status, code = http.StatusConflict, "DayAlreadyOpen"
	case errors.Is(err, services.ErrNoActiveDay):
		status, code = http.StatusConflict, "NoActiveDay"
	case errors.Is(err, services.ErrOpenSessionsExist):
		status, code = http.StatusConflict, "OpenSessionsExist"
	case errors.Is(err, services.ErrSessionNotOpen):
		status, code = http.StatusConflict, "SessionNotOpen"
	case errors.Is(err, services.ErrDayNotOpen):
		status, code = http.StatusConflict, "DayNotOpen"
	case errors.Is(err, services.ErrTerminalInactive):
		status, code = http.StatusConflict, "TerminalInactive"
	case errors.Is(err, services.ErrInvalidOpeningCash):
		status, code = http.StatusBadRequest, "InvalidOpeningCash"
	case errors.Is(err, services.ErrInvalidClosingCash):
		status, code = http.StatusBadRequest, "InvalidClosingCash"
	case errors.Is(err, services.ErrTerminalNotFound):
		status, code = http.StatusNotFound, "TerminalNotFound"
	case errors.Is(err, services.ErrCashierNotFound):
		status, code = http.StatusNotFound, "CashierNotFound"
	case errors.Is(err, services.ErrLocationNotFound):
		status, code = http.StatusNotFound, "LocationNotFound"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "NotFound"
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "ValidationFailed"
	case errors.Is(err, apperrors.ErrDuplicate):
		status, code = http.StatusConflict, "Conflict"
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"code": "Internal", "error": "Internal server error"})
		return
	}

	c.JSON(status, gin.H{"code": code, "error": err.Error()})
}
