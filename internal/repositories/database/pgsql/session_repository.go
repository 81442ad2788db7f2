package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for cashier session data.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryWithTx {
	return &PgxSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SessionRepositoryWithTx = (*PgxSessionRepository)(nil)

const fullSessionSelectQuery = `
SELECT
	s.session_id, s.business_day_id, s.terminal_id, s.cashier_id, s.session_number,
	s.status, s.opening_cash, s.closing_cash, s.opened_at, s.closed_at,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM sessions s
`

func (r *PgxSessionRepository) getSessions(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.Session, error) {
	rows, err := q.Query(ctx, fullSessionSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sessions", err)
	}
	defer rows.Close()
	sessions, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Session])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Session{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect session rows", err)
	}
	return sessions, nil
}

func (r *PgxSessionRepository) SaveSession(ctx context.Context, tx pgx.Tx, session domain.Session) error {
	query := `
		INSERT INTO sessions (
			session_id, business_day_id, terminal_id, cashier_id, session_number,
			status, opening_cash, opened_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		session.SessionID,
		session.BusinessDayID,
		session.TerminalID,
		session.CashierID,
		session.SessionNumber,
		session.Status,
		session.OpeningCash,
		session.OpenedAt,
		session.CreatedAt,
		session.CreatedBy,
		session.LastUpdatedAt,
		session.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// uq_sessions_open_terminal: the terminal already hosts an OPEN
			// session despite the application-level check.
			return apperrors.NewConflictError("terminal " + session.TerminalID + " already has an open session")
		}
		return apperrors.NewAppError(500, "failed to save session "+session.SessionID, err)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	sessions, err := r.getSessions(ctx, r.Pool, `WHERE s.session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperrors.NewNotFoundError("session " + sessionID + " not found")
	}
	return &sessions[0], nil
}

func (r *PgxSessionRepository) FindOpenSessionByTerminal(ctx context.Context, terminalID string) (*domain.Session, error) {
	sessions, err := r.getSessions(ctx, r.Pool, `WHERE s.terminal_id = $1 AND s.status = $2`, terminalID, domain.SessionOpen)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperrors.NewNotFoundError("no open session for terminal " + terminalID)
	}
	return &sessions[0], nil
}

func (r *PgxSessionRepository) FindOpenSessionByTerminalForUpdate(ctx context.Context, tx pgx.Tx, terminalID string) (*domain.Session, error) {
	sessions, err := r.getSessions(ctx, tx, `WHERE s.terminal_id = $1 AND s.status = $2 FOR UPDATE`, terminalID, domain.SessionOpen)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperrors.NewNotFoundError("no open session for terminal " + terminalID)
	}
	return &sessions[0], nil
}

func (r *PgxSessionRepository) ListSessionsByDay(ctx context.Context, dayID string) ([]domain.Session, error) {
	return r.getSessions(ctx, r.Pool, `WHERE s.business_day_id = $1 ORDER BY s.opened_at`, dayID)
}

func (r *PgxSessionRepository) CountOpenSessionsByDay(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	query := `SELECT COUNT(*) FROM sessions WHERE business_day_id = $1 AND status = $2;`
	var count int64
	if err := tx.QueryRow(ctx, query, dayID, domain.SessionOpen).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count open sessions for day "+dayID, err)
	}
	return count, nil
}

func (r *PgxSessionRepository) MarkSessionClosed(ctx context.Context, sessionID string, closingCash decimal.Decimal, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE sessions
		SET status = $2, closing_cash = $3, closed_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE session_id = $1 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, sessionID, domain.SessionClosed, closingCash, closedAt, closedBy, domain.SessionOpen)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close session "+sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindSessionByID(ctx, sessionID); findErr != nil {
			return findErr
		}
		// The session exists but is no longer OPEN.
		return apperrors.NewValidationFailedError("session " + sessionID + " is not open")
	}
	return nil
}
