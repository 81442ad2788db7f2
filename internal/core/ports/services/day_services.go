package services

import (
	"context"
	"time"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// DayLedgerReaderSvc defines read operations on business days
type DayLedgerReaderSvc interface {
	// GetActiveDay retrieves the OPEN business day for a location.
	GetActiveDay(ctx context.Context, locationID string) (*domain.BusinessDay, error)

	// GetDayByID retrieves a business day by its identifier.
	GetDayByID(ctx context.Context, dayID string) (*domain.BusinessDay, error)
}

// DayLedgerWriterSvc defines the state transitions of a business day
type DayLedgerWriterSvc interface {
	// OpenDay opens a new trading period for a location. Fails with
	// ErrDayAlreadyOpen when the location already has an OPEN day.
	OpenDay(ctx context.Context, locationID string, businessDate time.Time, openedBy string, notes string) (*domain.BusinessDay, error)

	// CloseDay transitions an OPEN day to CLOSED. Fails with
	// ErrOpenSessionsExist while any session hosted by the day is still OPEN.
	CloseDay(ctx context.Context, dayID string, closedBy string) (*domain.BusinessDay, error)
}

// DayLedgerSvcFacade combines the day ledger interfaces
type DayLedgerSvcFacade interface {
	DayLedgerReaderSvc
	DayLedgerWriterSvc
}
