package services

import (
	"context"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// TerminalRegistrySvc resolves physical terminal identity within a location.
// Hostname tokens are treated as hints: resolution degrades to an explicit
// selection and finally to a candidate list rather than failing hard.
type TerminalRegistrySvc interface {
	// ResolveTerminal applies the three-tier resolution policy: exact
	// system-name match first, then the explicitly supplied terminal, then a
	// candidate list for manual selection. When confirm is set and a manual
	// selection correlates with a previously-unseen hostname, the hostname is
	// backfilled onto the terminal (best effort, one time only).
	ResolveTerminal(ctx context.Context, locationID string, hostname string, terminalID string, confirm bool, requestedBy string) (*domain.TerminalResolution, error)

	// ListActiveTerminals returns the active terminals of a location.
	ListActiveTerminals(ctx context.Context, locationID string) ([]domain.Terminal, error)

	// GetTerminalByID retrieves a single terminal.
	GetTerminalByID(ctx context.Context, terminalID string) (*domain.Terminal, error)
}
