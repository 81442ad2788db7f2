package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
)

type PgxTerminalRepository struct {
	BaseRepository
}

// newPgxTerminalRepository creates a new repository for terminal master data.
func newPgxTerminalRepository(pool *pgxpool.Pool) portsrepo.TerminalRepositoryFacade {
	return &PgxTerminalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TerminalRepositoryFacade = (*PgxTerminalRepository)(nil)

const fullTerminalSelectQuery = `
SELECT
	t.terminal_id, t.location_id, t.terminal_code, t.name, t.system_name, t.is_active,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM terminals t
`

func (r *PgxTerminalRepository) getTerminals(ctx context.Context, filterQuery string, args ...any) ([]domain.Terminal, error) {
	rows, err := r.Pool.Query(ctx, fullTerminalSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query terminals", err)
	}
	defer rows.Close()
	terminals, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Terminal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Terminal{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect terminal rows", err)
	}
	return terminals, nil
}

func (r *PgxTerminalRepository) FindTerminalByID(ctx context.Context, terminalID string) (*domain.Terminal, error) {
	terminals, err := r.getTerminals(ctx, `WHERE t.terminal_id = $1`, terminalID)
	if err != nil {
		return nil, err
	}
	if len(terminals) == 0 {
		return nil, apperrors.NewNotFoundError("terminal " + terminalID + " not found")
	}
	return &terminals[0], nil
}

func (r *PgxTerminalRepository) FindTerminalBySystemName(ctx context.Context, locationID string, systemName string) (*domain.Terminal, error) {
	terminals, err := r.getTerminals(ctx, `WHERE t.location_id = $1 AND t.system_name = $2`, locationID, systemName)
	if err != nil {
		return nil, err
	}
	if len(terminals) == 0 {
		return nil, apperrors.NewNotFoundError("no terminal with system name " + systemName + " at location " + locationID)
	}
	return &terminals[0], nil
}

func (r *PgxTerminalRepository) ListActiveTerminals(ctx context.Context, locationID string) ([]domain.Terminal, error) {
	return r.getTerminals(ctx, `WHERE t.location_id = $1 AND t.is_active = TRUE ORDER BY t.terminal_code`, locationID)
}

// AssignSystemName backfills a hostname token onto a terminal. The IS NULL
// guard serializes concurrent backfills: only the first one applies.
func (r *PgxTerminalRepository) AssignSystemName(ctx context.Context, terminalID string, systemName string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE terminals
		SET system_name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE terminal_id = $1 AND system_name IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, terminalID, systemName, updatedAt, updatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// uq_terminals_location_system_name: the hostname already belongs
			// to a different terminal at this location.
			return apperrors.NewConflictError("system name " + systemName + " is already assigned at this location")
		}
		return apperrors.NewAppError(500, "failed to assign system name to terminal "+terminalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewValidationFailedError("terminal " + terminalID + " not found or already has a system name")
	}
	return nil
}
