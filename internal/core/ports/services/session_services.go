package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// SessionLedgerReaderSvc defines read operations on cashier sessions
type SessionLedgerReaderSvc interface {
	// GetSessionByID retrieves a session by its identifier.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// GetOpenSessionForTerminal retrieves the OPEN session for a terminal.
	// Read-only pre-flight for conflict display; OpenSession is authoritative.
	GetOpenSessionForTerminal(ctx context.Context, terminalID string) (*domain.Session, error)

	// ListSessionsForDay retrieves all sessions hosted by a business day.
	ListSessionsForDay(ctx context.Context, dayID string) ([]domain.Session, error)
}

// SessionLedgerWriterSvc defines the state transitions of a cashier session
type SessionLedgerWriterSvc interface {
	// OpenSession opens a session for a cashier on a terminal against the
	// terminal location's active business day. Fails with ErrNoActiveDay,
	// *TerminalBusyError or ErrInvalidOpeningCash.
	OpenSession(ctx context.Context, terminalID string, cashierID string, openingCash decimal.Decimal) (*domain.Session, error)

	// CloseSession transitions an OPEN session to CLOSED, recording the
	// counted closing cash. Fails with ErrSessionNotOpen otherwise.
	CloseSession(ctx context.Context, sessionID string, closingCash decimal.Decimal, closedBy string) (*domain.Session, error)
}

// SessionLedgerSvcFacade combines the session ledger interfaces
type SessionLedgerSvcFacade interface {
	SessionLedgerReaderSvc
	SessionLedgerWriterSvc
}
