package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// lifecycleService orchestrates the day ledger, session ledger and terminal
// registry into the four externally visible operations, enforcing the
// day → session → session close → day close ordering. Each stage names its
// missing prerequisite explicitly instead of relying on callers to sequence
// screens correctly.
type lifecycleService struct {
	dayLedger     portssvc.DayLedgerSvcFacade
	sessionLedger portssvc.SessionLedgerSvcFacade
	registry      portssvc.TerminalRegistrySvc
	publisher     portssvc.EventPublisher
}

// NewLifecycleService creates the lifecycle orchestrator.
func NewLifecycleService(
	dayLedger portssvc.DayLedgerSvcFacade,
	sessionLedger portssvc.SessionLedgerSvcFacade,
	registry portssvc.TerminalRegistrySvc,
	publisher portssvc.EventPublisher,
) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		dayLedger:     dayLedger,
		sessionLedger: sessionLedger,
		registry:      registry,
		publisher:     publisher,
	}
}

var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// OpenBusinessDay opens a trading day for a location.
func (s *lifecycleService) OpenBusinessDay(ctx context.Context, locationID string, req dto.OpenDayRequest, openedBy string) (*domain.BusinessDay, error) {
	businessDate, err := time.Parse(time.DateOnly, req.BusinessDate)
	if err != nil {
		return nil, fmt.Errorf("%w: business date %q is not a valid YYYY-MM-DD date", apperrors.ErrValidation, req.BusinessDate)
	}
	return s.dayLedger.OpenDay(ctx, locationID, businessDate, openedBy, req.Notes)
}

// GetActiveBusinessDay retrieves the OPEN day for a location.
func (s *lifecycleService) GetActiveBusinessDay(ctx context.Context, locationID string) (*domain.BusinessDay, error) {
	return s.dayLedger.GetActiveDay(ctx, locationID)
}

// OpenCashierSession opens a session. When the caller knows its terminal it
// passes the ID directly; otherwise the registry resolves the reported
// hostname, and an unresolved hostname is a TerminalNotFound rejection (the
// caller should fall back to the resolve operation for manual selection).
func (s *lifecycleService) OpenCashierSession(ctx context.Context, req dto.OpenSessionRequest, requestedBy string) (*domain.Session, error) {
	terminalID := req.TerminalID
	if terminalID == "" {
		if req.LocationID == "" || req.Hostname == "" {
			return nil, fmt.Errorf("%w: either terminalID or both locationID and hostname are required", apperrors.ErrValidation)
		}
		resolution, err := s.registry.ResolveTerminal(ctx, req.LocationID, req.Hostname, "", false, requestedBy)
		if err != nil {
			return nil, err
		}
		if resolution.Terminal == nil {
			return nil, fmt.Errorf("%w: no terminal matches hostname %q at location %s", ErrTerminalNotFound, req.Hostname, req.LocationID)
		}
		terminalID = resolution.Terminal.TerminalID
	}

	return s.sessionLedger.OpenSession(ctx, terminalID, req.CashierID, req.OpeningCash)
}

// CloseCashierSession closes a session and publishes SessionClosed for
// downstream reconciliation.
func (s *lifecycleService) CloseCashierSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, closedBy string) (*domain.Session, error) {
	session, err := s.sessionLedger.CloseSession(ctx, sessionID, req.ClosingCash, closedBy)
	if err != nil {
		return nil, err
	}

	event := domain.SessionClosedEvent{
		SessionID:     session.SessionID,
		SessionNumber: session.SessionNumber,
		BusinessDayID: session.BusinessDayID,
		TerminalID:    session.TerminalID,
		CashierID:     session.CashierID,
		OpeningCash:   session.OpeningCash,
		OpenedAt:      session.OpenedAt,
	}
	if session.ClosingCash != nil {
		event.ClosingCash = *session.ClosingCash
	}
	if session.ClosedAt != nil {
		event.ClosedAt = *session.ClosedAt
	}
	if err := s.publisher.PublishSessionClosed(ctx, event); err != nil {
		// Reconciliation catches up from the ledger itself; the close stands.
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish SessionClosed event",
			slog.String("session_id", session.SessionID),
			slog.String("error", err.Error()),
		)
	}
	return session, nil
}

// CloseBusinessDay closes a day and publishes DayClosed.
func (s *lifecycleService) CloseBusinessDay(ctx context.Context, dayID string, closedBy string) (*domain.BusinessDay, error) {
	day, err := s.dayLedger.CloseDay(ctx, dayID, closedBy)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionLedger.ListSessionsForDay(ctx, dayID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to list sessions for closed day",
			slog.String("day_id", dayID),
			slog.String("error", err.Error()),
		)
		sessions = nil
	}

	event := domain.DayClosedEvent{
		DayID:          day.DayID,
		LocationID:     day.LocationID,
		BusinessDate:   day.BusinessDate,
		ClosedBy:       closedBy,
		SessionsClosed: len(sessions),
	}
	if day.ClosedAt != nil {
		event.ClosedAt = *day.ClosedAt
	}
	if err := s.publisher.PublishDayClosed(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish DayClosed event",
			slog.String("day_id", dayID),
			slog.String("error", err.Error()),
		)
	}
	return day, nil
}
