package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/middleware"
)

// dayService is the day ledger: it owns business day records, their OPEN to
// CLOSED transition and the one-open-day-per-location invariant.
type dayService struct {
	dayRepo      portsrepo.DayRepositoryWithTx
	sessionRepo  portsrepo.SessionRepositoryFacade
	locationRepo portsrepo.LocationReader
	userRepo     portsrepo.UserReader
}

// NewDayService creates the day ledger service.
func NewDayService(
	dayRepo portsrepo.DayRepositoryWithTx,
	sessionRepo portsrepo.SessionRepositoryFacade,
	locationRepo portsrepo.LocationReader,
	userRepo portsrepo.UserReader,
) portssvc.DayLedgerSvcFacade {
	return &dayService{
		dayRepo:      dayRepo,
		sessionRepo:  sessionRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.DayLedgerSvcFacade = (*dayService)(nil)

// OpenDay opens a new trading period for a location. Counters start at 1.
// The query-first check gives a precise error for the common conflict; the
// partial unique index behind SaveDay settles concurrent racers.
func (s *dayService) OpenDay(ctx context.Context, locationID string, businessDate time.Time, openedBy string, notes string) (*domain.BusinessDay, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, locationID)
		}
		return nil, fmt.Errorf("failed to look up location %s: %w", locationID, err)
	}
	if !location.IsActive {
		return nil, fmt.Errorf("%w: location %s is inactive", apperrors.ErrValidation, locationID)
	}

	if _, err := s.userRepo.FindUserByID(ctx, openedBy); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCashierNotFound, openedBy)
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", openedBy, err)
	}

	// Query-first: one open day per location, regardless of business date.
	existing, err := s.dayRepo.FindActiveDayByLocation(ctx, locationID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for open day at location %s: %w", locationID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: day %s opened %s", ErrDayAlreadyOpen, existing.DayID, existing.OpenedAt.Format(time.RFC3339))
	}

	now := time.Now().UTC()
	day := domain.BusinessDay{
		DayID:             uuid.NewString(),
		LocationID:        locationID,
		BusinessDate:      businessDate,
		Status:            domain.DayOpen,
		OpenedBy:          openedBy,
		OpenedAt:          now,
		NextSaleNumber:    1,
		NextSessionNumber: 1,
		Notes:             notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     openedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: openedBy,
		},
	}

	if err := s.dayRepo.SaveDay(ctx, day); err != nil {
		// A racer may have opened the day between the check and the insert.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: location %s", ErrDayAlreadyOpen, locationID)
		}
		logger.Error("Failed to save business day", slog.String("error", err.Error()), slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to save business day: %w", err)
	}

	logger.Info("Business day opened",
		slog.String("day_id", day.DayID),
		slog.String("location_id", locationID),
		slog.String("business_date", businessDate.Format(time.DateOnly)),
	)
	return &day, nil
}

// GetActiveDay retrieves the OPEN business day for a location.
func (s *dayService) GetActiveDay(ctx context.Context, locationID string) (*domain.BusinessDay, error) {
	return s.dayRepo.FindActiveDayByLocation(ctx, locationID)
}

// GetDayByID retrieves a business day by its identifier.
func (s *dayService) GetDayByID(ctx context.Context, dayID string) (*domain.BusinessDay, error) {
	return s.dayRepo.FindDayByID(ctx, dayID)
}

// CloseDay transitions an OPEN day to CLOSED. The day row is locked for the
// whole check-then-act sequence so no session can slip open between the
// open-session count and the status flip.
func (s *dayService) CloseDay(ctx context.Context, dayID string, closedBy string) (*domain.BusinessDay, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.dayRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.dayRepo.Rollback(ctx, tx)
	}()

	day, err := s.dayRepo.FindDayByIDForUpdate(ctx, tx, dayID)
	if err != nil {
		return nil, err
	}
	if !day.IsOpen() {
		return nil, fmt.Errorf("%w: day %s is %s", ErrDayNotOpen, dayID, day.Status)
	}

	openCount, err := s.sessionRepo.CountOpenSessionsByDay(ctx, tx, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open sessions for day %s: %w", dayID, err)
	}
	if openCount > 0 {
		return nil, fmt.Errorf("%w: %d still open", ErrOpenSessionsExist, openCount)
	}

	now := time.Now().UTC()
	if err := s.dayRepo.MarkDayClosed(ctx, tx, dayID, closedBy, now); err != nil {
		return nil, fmt.Errorf("failed to close day %s: %w", dayID, err)
	}

	if err := s.dayRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	day.Status = domain.DayClosed
	day.ClosedBy = &closedBy
	day.ClosedAt = &now
	day.LastUpdatedAt = now
	day.LastUpdatedBy = closedBy

	logger.Info("Business day closed",
		slog.String("day_id", dayID),
		slog.String("location_id", day.LocationID),
		slog.String("closed_by", closedBy),
	)
	return day, nil
}
