package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DayRepo:      newPgxDayRepository(dbPool),
		SessionRepo:  newPgxSessionRepository(dbPool),
		TerminalRepo: newPgxTerminalRepository(dbPool),
		LocationRepo: newPgxLocationRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
