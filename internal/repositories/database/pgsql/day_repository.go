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

type PgxDayRepository struct {
	BaseRepository
}

// newPgxDayRepository creates a new repository for business day data.
func newPgxDayRepository(pool *pgxpool.Pool) portsrepo.DayRepositoryWithTx {
	return &PgxDayRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DayRepositoryWithTx = (*PgxDayRepository)(nil)

const fullDaySelectQuery = `
SELECT
	d.day_id, d.location_id, d.business_date, d.status, d.opened_by, d.opened_at,
	d.closed_by, d.closed_at, d.next_sale_number, d.next_session_number, d.notes,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM business_days d
`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so day lookups can
// run inside or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxDayRepository) getDays(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.BusinessDay, error) {
	rows, err := q.Query(ctx, fullDaySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query business days", err)
	}
	defer rows.Close()
	days, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.BusinessDay])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.BusinessDay{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect business day rows", err)
	}
	return days, nil
}

func (r *PgxDayRepository) SaveDay(ctx context.Context, day domain.BusinessDay) error {
	query := `
		INSERT INTO business_days (
			day_id, location_id, business_date, status, opened_by, opened_at,
			next_sale_number, next_session_number, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		day.DayID,
		day.LocationID,
		day.BusinessDate,
		day.Status,
		day.OpenedBy,
		day.OpenedAt,
		day.NextSaleNumber,
		day.NextSessionNumber,
		day.Notes,
		day.CreatedAt,
		day.CreatedBy,
		day.LastUpdatedAt,
		day.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// uq_business_days_open_location: another OPEN day for this
			// location won the race.
			return apperrors.NewConflictError("an open business day already exists for location " + day.LocationID)
		}
		return apperrors.NewAppError(500, "failed to save business day "+day.DayID, err)
	}
	return nil
}

func (r *PgxDayRepository) FindDayByID(ctx context.Context, dayID string) (*domain.BusinessDay, error) {
	days, err := r.getDays(ctx, r.Pool, `WHERE d.day_id = $1`, dayID)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, apperrors.NewNotFoundError("business day " + dayID + " not found")
	}
	return &days[0], nil
}

func (r *PgxDayRepository) FindActiveDayByLocation(ctx context.Context, locationID string) (*domain.BusinessDay, error) {
	days, err := r.getDays(ctx, r.Pool, `WHERE d.location_id = $1 AND d.status = $2`, locationID, domain.DayOpen)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, apperrors.NewNotFoundError("no open business day for location " + locationID)
	}
	return &days[0], nil
}

func (r *PgxDayRepository) FindDayByIDForUpdate(ctx context.Context, tx pgx.Tx, dayID string) (*domain.BusinessDay, error) {
	days, err := r.getDays(ctx, tx, `WHERE d.day_id = $1 FOR UPDATE`, dayID)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, apperrors.NewNotFoundError("business day " + dayID + " not found")
	}
	return &days[0], nil
}

func (r *PgxDayRepository) FindActiveDayForUpdate(ctx context.Context, tx pgx.Tx, locationID string) (*domain.BusinessDay, error) {
	days, err := r.getDays(ctx, tx, `WHERE d.location_id = $1 AND d.status = $2 FOR UPDATE`, locationID, domain.DayOpen)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, apperrors.NewNotFoundError("no open business day for location " + locationID)
	}
	return &days[0], nil
}

func (r *PgxDayRepository) MarkDayClosed(ctx context.Context, tx pgx.Tx, dayID string, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE business_days
		SET status = $2, closed_by = $3, closed_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE day_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, dayID, domain.DayClosed, closedBy, closedAt, domain.DayOpen)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close business day "+dayID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewValidationFailedError("business day " + dayID + " is not open")
	}
	return nil
}

// NextSessionNumber allocates the next session sequence value. A single
// mutating statement, guarded by the day's OPEN status: never a
// read-then-increment pair.
func (r *PgxDayRepository) NextSessionNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	return r.nextCounter(ctx, tx, dayID, "next_session_number")
}

// NextSaleNumber allocates the next sale sequence value.
func (r *PgxDayRepository) NextSaleNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	return r.nextCounter(ctx, tx, dayID, "next_sale_number")
}

func (r *PgxDayRepository) nextCounter(ctx context.Context, tx pgx.Tx, dayID string, column string) (int64, error) {
	// column is one of the two fixed counter names above, never user input.
	query := `
		UPDATE business_days
		SET ` + column + ` = ` + column + ` + 1
		WHERE day_id = $1 AND status = $2
		RETURNING ` + column + ` - 1;
	`
	var value int64
	err := tx.QueryRow(ctx, query, dayID, domain.DayOpen).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewDayClosedError("business day " + dayID + " is not open; cannot allocate numbers")
		}
		return 0, apperrors.NewAppError(500, "failed to allocate "+column+" for day "+dayID, err)
	}
	return value, nil
}
