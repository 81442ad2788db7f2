package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// DayReader defines read operations for business day data
type DayReader interface {
	// FindDayByID retrieves a business day by its unique identifier.
	FindDayByID(ctx context.Context, dayID string) (*domain.BusinessDay, error)

	// FindActiveDayByLocation retrieves the single OPEN business day for a
	// location, or apperrors.ErrNotFound when the location has none.
	FindActiveDayByLocation(ctx context.Context, locationID string) (*domain.BusinessDay, error)
}

// DayWriter defines write operations for business day data. The *ForUpdate
// variants acquire the day row lock and must run inside a transaction; all
// check-then-act sequences against a day go through them.
type DayWriter interface {
	// SaveDay persists a newly opened business day. Returns a conflict error
	// when an OPEN day already exists for the location.
	SaveDay(ctx context.Context, day domain.BusinessDay) error

	// FindDayByIDForUpdate retrieves a day by ID and locks its row.
	FindDayByIDForUpdate(ctx context.Context, tx pgx.Tx, dayID string) (*domain.BusinessDay, error)

	// FindActiveDayForUpdate retrieves the OPEN day for a location and locks
	// its row, serializing all session opens and number allocations for it.
	FindActiveDayForUpdate(ctx context.Context, tx pgx.Tx, locationID string) (*domain.BusinessDay, error)

	// MarkDayClosed transitions an OPEN day to CLOSED.
	MarkDayClosed(ctx context.Context, tx pgx.Tx, dayID string, closedBy string, closedAt time.Time) error
}

// SequenceAllocator hands out strictly increasing, gap-free per-day numbers.
// Each allocation is a single mutating statement against the owning day row,
// never a read-then-increment pair, and fails when the day is not OPEN.
// Numbering restarts at 1 for every new business day.
type SequenceAllocator interface {
	// NextSessionNumber allocates the next session sequence value for a day.
	NextSessionNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error)

	// NextSaleNumber allocates the next sale sequence value for a day. It is
	// consumed by the downstream billing collaborator.
	NextSaleNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error)
}

// DayRepositoryFacade combines all business-day repository interfaces
type DayRepositoryFacade interface {
	DayReader
	DayWriter
	SequenceAllocator
}

// DayRepositoryWithTx extends DayRepositoryFacade with transaction capabilities
type DayRepositoryWithTx interface {
	DayRepositoryFacade
	TransactionManager
}
