package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionClosedEvent is published when a cashier session closes, for
// consumption by downstream reconciliation and reporting.
type SessionClosedEvent struct {
	SessionID     string          `json:"sessionID"`
	SessionNumber string          `json:"sessionNumber"`
	BusinessDayID string          `json:"businessDayID"`
	TerminalID    string          `json:"terminalID"`
	CashierID     string          `json:"cashierID"`
	OpeningCash   decimal.Decimal `json:"openingCash"`
	ClosingCash   decimal.Decimal `json:"closingCash"`
	OpenedAt      time.Time       `json:"openedAt"`
	ClosedAt      time.Time       `json:"closedAt"`
}

// DayClosedEvent is published when a business day closes.
type DayClosedEvent struct {
	DayID        string    `json:"dayID"`
	LocationID   string    `json:"locationID"`
	BusinessDate time.Time `json:"businessDate"`
	ClosedBy     string    `json:"closedBy"`
	ClosedAt     time.Time `json:"closedAt"`
	// SessionsClosed is the number of sessions hosted by the day, all of
	// which are CLOSED by the time this event is emitted.
	SessionsClosed int `json:"sessionsClosed"`
}
