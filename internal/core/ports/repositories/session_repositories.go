package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// SessionReader defines read operations for cashier session data
type SessionReader interface {
	// FindSessionByID retrieves a session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// FindOpenSessionByTerminal retrieves the OPEN session for a terminal, or
	// apperrors.ErrNotFound when the terminal is idle. This is a read-only
	// pre-flight; OpenSession remains the authoritative check.
	FindOpenSessionByTerminal(ctx context.Context, terminalID string) (*domain.Session, error)

	// ListSessionsByDay retrieves all sessions hosted by a business day,
	// ordered by opening time.
	ListSessionsByDay(ctx context.Context, dayID string) ([]domain.Session, error)
}

// SessionWriter defines write operations for cashier session data
type SessionWriter interface {
	// SaveSession persists a newly opened session inside the caller's
	// transaction. Returns a conflict error when the terminal already has an
	// OPEN session.
	SaveSession(ctx context.Context, tx pgx.Tx, session domain.Session) error

	// FindOpenSessionByTerminalForUpdate retrieves and locks the OPEN session
	// row for a terminal, or apperrors.ErrNotFound when the terminal is idle.
	FindOpenSessionByTerminalForUpdate(ctx context.Context, tx pgx.Tx, terminalID string) (*domain.Session, error)

	// CountOpenSessionsByDay counts OPEN sessions referencing a day. Called
	// under the day row lock when closing a day.
	CountOpenSessionsByDay(ctx context.Context, tx pgx.Tx, dayID string) (int64, error)

	// MarkSessionClosed transitions an OPEN session to CLOSED, recording the
	// counted closing cash. Returns apperrors.ErrValidation when the session
	// exists but is no longer OPEN.
	MarkSessionClosed(ctx context.Context, sessionID string, closingCash decimal.Decimal, closedBy string, closedAt time.Time) error
}

// SessionRepositoryFacade combines all session repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}

// SessionRepositoryWithTx extends SessionRepositoryFacade with transaction capabilities
type SessionRepositoryWithTx interface {
	SessionRepositoryFacade
	TransactionManager
}
