package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// sessionService is the session ledger: it owns cashier session records, the
// one-open-session-per-terminal invariant and their binding to an open day.
type sessionService struct {
	sessionRepo  portsrepo.SessionRepositoryWithTx
	dayRepo      portsrepo.DayRepositoryFacade
	terminalRepo portsrepo.TerminalReader
	locationRepo portsrepo.LocationReader
	userRepo     portsrepo.UserReader
}

// NewSessionService creates the session ledger service.
func NewSessionService(
	sessionRepo portsrepo.SessionRepositoryWithTx,
	dayRepo portsrepo.DayRepositoryFacade,
	terminalRepo portsrepo.TerminalReader,
	locationRepo portsrepo.LocationReader,
	userRepo portsrepo.UserReader,
) portssvc.SessionLedgerSvcFacade {
	return &sessionService{
		sessionRepo:  sessionRepo,
		dayRepo:      dayRepo,
		terminalRepo: terminalRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.SessionLedgerSvcFacade = (*sessionService)(nil)

// OpenSession opens a cashier session on a terminal. The active day lookup,
// the terminal exclusivity check, the session number allocation and the
// insert all run in one transaction under the day's row lock, so concurrent
// opens against the same day serialize and numbers come out gap free.
func (s *sessionService) OpenSession(ctx context.Context, terminalID string, cashierID string, openingCash decimal.Decimal) (*domain.Session, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if openingCash.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidOpeningCash, openingCash.String())
	}

	terminal, err := s.terminalRepo.FindTerminalByID(ctx, terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTerminalNotFound, terminalID)
		}
		return nil, fmt.Errorf("failed to look up terminal %s: %w", terminalID, err)
	}
	if !terminal.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrTerminalInactive, terminalID)
	}

	if _, err := s.userRepo.FindUserByID(ctx, cashierID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCashierNotFound, cashierID)
		}
		return nil, fmt.Errorf("failed to look up cashier %s: %w", cashierID, err)
	}

	location, err := s.locationRepo.FindLocationByID(ctx, terminal.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up location %s: %w", terminal.LocationID, err)
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.sessionRepo.Rollback(ctx, tx)
	}()

	// Locks the day row: allocation and the exclusivity check below form a
	// single critical section per day.
	day, err := s.dayRepo.FindActiveDayForUpdate(ctx, tx, terminal.LocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: location %s", ErrNoActiveDay, terminal.LocationID)
		}
		return nil, fmt.Errorf("failed to find active day for location %s: %w", terminal.LocationID, err)
	}

	existing, err := s.sessionRepo.FindOpenSessionByTerminalForUpdate(ctx, tx, terminalID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open session for terminal %s: %w", terminalID, err)
	}
	if existing != nil {
		return nil, &TerminalBusyError{
			SessionID:     existing.SessionID,
			SessionNumber: existing.SessionNumber,
			CashierID:     existing.CashierID,
			OpenedAt:      existing.OpenedAt,
		}
	}

	sequence, err := s.dayRepo.NextSessionNumber(ctx, tx, day.DayID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate session number for day %s: %w", day.DayID, err)
	}

	now := time.Now().UTC()
	session := domain.Session{
		SessionID:     uuid.NewString(),
		BusinessDayID: day.DayID,
		TerminalID:    terminalID,
		CashierID:     cashierID,
		SessionNumber: domain.FormatSessionNumber(location.Code, sequence),
		Status:        domain.SessionOpen,
		OpeningCash:   openingCash,
		OpenedAt:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierID,
		},
	}

	if err := s.sessionRepo.SaveSession(ctx, tx, session); err != nil {
		logger.Error("Failed to save session", slog.String("error", err.Error()), slog.String("terminal_id", terminalID))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Session opened",
		slog.String("session_id", session.SessionID),
		slog.String("session_number", session.SessionNumber),
		slog.String("terminal_id", terminalID),
		slog.String("cashier_id", cashierID),
	)
	return &session, nil
}

// CloseSession transitions an OPEN session to CLOSED and records the counted
// closing cash. Cash-up reconciliation happens upstream; by the time this is
// called the caller asserts there are no unresolved cash-up exceptions.
func (s *sessionService) CloseSession(ctx context.Context, sessionID string, closingCash decimal.Decimal, closedBy string) (*domain.Session, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if closingCash.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidClosingCash, closingCash.String())
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, fmt.Errorf("%w: session %s is %s", ErrSessionNotOpen, sessionID, session.Status)
	}

	now := time.Now().UTC()
	if err := s.sessionRepo.MarkSessionClosed(ctx, sessionID, closingCash, closedBy, now); err != nil {
		// A concurrent close may have won between the read and the update.
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: session %s", ErrSessionNotOpen, sessionID)
		}
		return nil, fmt.Errorf("failed to close session %s: %w", sessionID, err)
	}

	session.Status = domain.SessionClosed
	session.ClosingCash = &closingCash
	session.ClosedAt = &now
	session.LastUpdatedAt = now
	session.LastUpdatedBy = closedBy

	logger.Info("Session closed",
		slog.String("session_id", sessionID),
		slog.String("session_number", session.SessionNumber),
		slog.String("closing_cash", closingCash.String()),
	)
	return session, nil
}

// GetSessionByID retrieves a session by its identifier.
func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

// GetOpenSessionForTerminal retrieves the OPEN session for a terminal.
func (s *sessionService) GetOpenSessionForTerminal(ctx context.Context, terminalID string) (*domain.Session, error) {
	return s.sessionRepo.FindOpenSessionByTerminal(ctx, terminalID)
}

// ListSessionsForDay retrieves all sessions hosted by a business day.
func (s *sessionService) ListSessionsForDay(ctx context.Context, dayID string) ([]domain.Session, error) {
	return s.sessionRepo.ListSessionsByDay(ctx, dayID)
}
