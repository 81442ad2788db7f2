package repositories

import (
	"context"
	"time"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// TerminalReader defines read operations for terminal master data
type TerminalReader interface {
	// FindTerminalByID retrieves a terminal by its unique identifier.
	FindTerminalByID(ctx context.Context, terminalID string) (*domain.Terminal, error)

	// FindTerminalBySystemName retrieves the terminal carrying the given
	// hardware/hostname token within a location.
	FindTerminalBySystemName(ctx context.Context, locationID string, systemName string) (*domain.Terminal, error)

	// ListActiveTerminals retrieves all active terminals for a location,
	// ordered by terminal code.
	ListActiveTerminals(ctx context.Context, locationID string) ([]domain.Terminal, error)
}

// TerminalWriter defines the single mutation this subsystem performs on
// terminal data: the one-time system name backfill.
type TerminalWriter interface {
	// AssignSystemName records a hostname token against a terminal that has
	// none yet. The update is guarded so two concurrent backfills cannot
	// disagree: it only applies while system_name is still unset.
	AssignSystemName(ctx context.Context, terminalID string, systemName string, updatedBy string, updatedAt time.Time) error
}

// TerminalRepositoryFacade combines all terminal repository interfaces
type TerminalRepositoryFacade interface {
	TerminalReader
	TerminalWriter
}
