package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
)

type PgxLocationRepository struct {
	BaseRepository
}

// newPgxLocationRepository creates a read-only repository for location
// master data.
func newPgxLocationRepository(pool *pgxpool.Pool) portsrepo.LocationReader {
	return &PgxLocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LocationReader = (*PgxLocationRepository)(nil)

func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	query := `
		SELECT l.location_id, l.code, l.name, l.is_active,
			l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM locations l
		WHERE l.location_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query location "+locationID, err)
	}
	defer rows.Close()
	location, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Location])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("location " + locationID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to collect location row", err)
	}
	return &location, nil
}
