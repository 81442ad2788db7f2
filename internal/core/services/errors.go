package services

import (
	"errors"
	"fmt"
	"time"
)

// Domain rejections. Every one of these is a normal, expected business-rule
// refusal of a specific precondition, never an internal failure.
var (
	ErrDayAlreadyOpen     = errors.New("an open business day already exists for this location")
	ErrDayNotOpen         = errors.New("business day is not open")
	ErrNoActiveDay        = errors.New("no open business day for this location")
	ErrOpenSessionsExist  = errors.New("business day still has open sessions")
	ErrSessionNotOpen     = errors.New("session is not open")
	ErrInvalidOpeningCash = errors.New("opening cash must not be negative")
	ErrInvalidClosingCash = errors.New("closing cash must not be negative")
	ErrTerminalNotFound   = errors.New("terminal not found")
	ErrTerminalInactive   = errors.New("terminal is not active")
	ErrCashierNotFound    = errors.New("cashier not found")
	ErrLocationNotFound   = errors.New("location not found")
)

// TerminalBusyError rejects an OpenSession attempt against a terminal that
// already hosts an OPEN session. It carries the conflicting session's
// identity so callers can present an actionable message.
type TerminalBusyError struct {
	SessionID     string
	SessionNumber string
	CashierID     string
	OpenedAt      time.Time
}

func (e *TerminalBusyError) Error() string {
	return fmt.Sprintf("terminal already has open session %s (cashier %s, opened at %s)",
		e.SessionNumber, e.CashierID, e.OpenedAt.Format(time.RFC3339))
}
