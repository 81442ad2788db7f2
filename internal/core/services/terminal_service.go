package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// terminalService is the terminal registry. Hardware identity is not
// guaranteed (a device may report no stable hostname), so resolution is a
// best-effort ladder that ends in manual selection instead of a hard failure.
type terminalService struct {
	terminalRepo portsrepo.TerminalRepositoryFacade
}

// NewTerminalService creates the terminal registry service.
func NewTerminalService(terminalRepo portsrepo.TerminalRepositoryFacade) portssvc.TerminalRegistrySvc {
	return &terminalService{terminalRepo: terminalRepo}
}

var _ portssvc.TerminalRegistrySvc = (*terminalService)(nil)

// ResolveTerminal applies the three-tier policy: exact system-name match,
// then the explicitly selected terminal, then the active-terminal list for
// manual choice.
func (s *terminalService) ResolveTerminal(ctx context.Context, locationID string, hostname string, terminalID string, confirm bool, requestedBy string) (*domain.TerminalResolution, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if hostname != "" {
		terminal, err := s.terminalRepo.FindTerminalBySystemName(ctx, locationID, hostname)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve hostname %q at location %s: %w", hostname, locationID, err)
		}
		if terminal != nil && terminal.IsActive {
			return &domain.TerminalResolution{Method: domain.ResolvedBySystemName, Terminal: terminal}, nil
		}
	}

	if terminalID != "" {
		terminal, err := s.terminalRepo.FindTerminalByID(ctx, terminalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrTerminalNotFound, terminalID)
			}
			return nil, fmt.Errorf("failed to look up terminal %s: %w", terminalID, err)
		}
		if terminal.LocationID != locationID {
			return nil, fmt.Errorf("%w: terminal %s does not belong to location %s", ErrTerminalNotFound, terminalID, locationID)
		}
		if !terminal.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrTerminalInactive, terminalID)
		}

		if confirm && hostname != "" && terminal.SystemName == nil {
			s.backfillSystemName(ctx, terminal, hostname, requestedBy)
		}
		return &domain.TerminalResolution{Method: domain.ResolvedManually, Terminal: terminal}, nil
	}

	candidates, err := s.terminalRepo.ListActiveTerminals(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals for location %s: %w", locationID, err)
	}

	logger.Info("Hostname resolution fell through to manual selection",
		slog.String("location_id", locationID),
		slog.String("hostname", hostname),
		slog.Int("candidates", len(candidates)),
	)
	return &domain.TerminalResolution{Method: domain.ResolutionNone, Candidates: candidates}, nil
}

// backfillSystemName records a confirmed hostname against a terminal that has
// none yet. The repository guard only applies the update while system_name is
// still unset, so concurrent backfills cannot disagree. Failures are logged
// and swallowed: the hostname is a hint, not required state.
func (s *terminalService) backfillSystemName(ctx context.Context, terminal *domain.Terminal, hostname string, requestedBy string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	if err := s.terminalRepo.AssignSystemName(ctx, terminal.TerminalID, hostname, requestedBy, now); err != nil {
		logger.Warn("System name backfill skipped",
			slog.String("terminal_id", terminal.TerminalID),
			slog.String("hostname", hostname),
			slog.String("error", err.Error()),
		)
		return
	}
	terminal.SystemName = &hostname
	logger.Info("System name backfilled",
		slog.String("terminal_id", terminal.TerminalID),
		slog.String("hostname", hostname),
	)
}

// ListActiveTerminals returns the active terminals of a location.
func (s *terminalService) ListActiveTerminals(ctx context.Context, locationID string) ([]domain.Terminal, error) {
	return s.terminalRepo.ListActiveTerminals(ctx, locationID)
}

// GetTerminalByID retrieves a single terminal.
func (s *terminalService) GetTerminalByID(ctx context.Context, terminalID string) (*domain.Terminal, error) {
	terminal, err := s.terminalRepo.FindTerminalByID(ctx, terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTerminalNotFound, terminalID)
		}
		return nil, err
	}
	return terminal, nil
}
