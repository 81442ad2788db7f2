package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus indicates the state of a cashier session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// Session represents one cashier's continuous period of activity on a single
// terminal, bounded by opening and closing cash counts. At most one OPEN
// session may exist per terminal; a session may only be created against an
// OPEN business day.
type Session struct {
	SessionID     string           `json:"sessionID" db:"session_id"`          // Primary key (UUID)
	BusinessDayID string           `json:"businessDayID" db:"business_day_id"` // FK -> business_days.day_id
	TerminalID    string           `json:"terminalID" db:"terminal_id"`        // FK -> terminals.terminal_id
	CashierID     string           `json:"cashierID" db:"cashier_id"`          // UserID reference
	SessionNumber string           `json:"sessionNumber" db:"session_number"`  // Durable human-facing key, e.g. STORE1-0001
	Status        SessionStatus    `json:"status" db:"status"`
	OpeningCash   decimal.Decimal  `json:"openingCash" db:"opening_cash"`
	ClosingCash   *decimal.Decimal `json:"closingCash,omitempty" db:"closing_cash"`
	OpenedAt      time.Time        `json:"openedAt" db:"opened_at"`
	ClosedAt      *time.Time       `json:"closedAt,omitempty" db:"closed_at"`
	AuditFields
}

// IsOpen reports whether the session is still accepting billing activity.
func (s *Session) IsOpen() bool {
	return s.Status == SessionOpen
}

// FormatSessionNumber renders the durable session identifier from the location
// code and an allocated sequence value. Sale numbers on downstream documents
// follow the same convention with their own per-day counter.
func FormatSessionNumber(locationCode string, sequence int64) string {
	return fmt.Sprintf("%s-%04d", locationCode, sequence)
}
