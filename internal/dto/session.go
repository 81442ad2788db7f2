package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// --- Cashier Session DTOs ---

// OpenSessionRequest defines data for opening a cashier session. Callers
// identify the terminal either directly by TerminalID or by LocationID plus
// the hostname token reported by the device.
type OpenSessionRequest struct {
	TerminalID  string          `json:"terminalID"`
	LocationID  string          `json:"locationID"`
	Hostname    string          `json:"hostname"`
	CashierID   string          `json:"cashierID" binding:"required"`
	OpeningCash decimal.Decimal `json:"openingCash"`
}

// CloseSessionRequest defines data for closing a cashier session. The caller
// is responsible for having completed cash-up before closing.
type CloseSessionRequest struct {
	ClosingCash decimal.Decimal `json:"closingCash"`
}

// SessionResponse defines data returned for a cashier session.
type SessionResponse struct {
	SessionID     string           `json:"sessionID"`
	BusinessDayID string           `json:"businessDayID"`
	TerminalID    string           `json:"terminalID"`
	CashierID     string           `json:"cashierID"`
	SessionNumber string           `json:"sessionNumber"`
	Status        string           `json:"status"`
	OpeningCash   decimal.Decimal  `json:"openingCash"`
	ClosingCash   *decimal.Decimal `json:"closingCash,omitempty"`
	OpenedAt      time.Time        `json:"openedAt"`
	ClosedAt      *time.Time       `json:"closedAt,omitempty"`
}

// ToSessionResponse converts domain.Session to DTO.
func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		SessionID:     s.SessionID,
		BusinessDayID: s.BusinessDayID,
		TerminalID:    s.TerminalID,
		CashierID:     s.CashierID,
		SessionNumber: s.SessionNumber,
		Status:        string(s.Status),
		OpeningCash:   s.OpeningCash,
		ClosingCash:   s.ClosingCash,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
	}
}

// TerminalBusyDetail describes the session blocking a terminal so the caller
// can present an actionable message.
type TerminalBusyDetail struct {
	SessionNumber string    `json:"sessionNumber"`
	CashierID     string    `json:"cashierID"`
	OpenedAt      time.Time `json:"openedAt"`
}
