package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/core/services"
)

// MockDayRepository is a mock type for the DayRepositoryWithTx interface
type MockDayRepository struct {
	mock.Mock
}

func (m *MockDayRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDayRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDayRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDayRepository) FindDayByID(ctx context.Context, dayID string) (*domain.BusinessDay, error) {
	args := m.Called(ctx, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessDay), args.Error(1)
}

func (m *MockDayRepository) FindActiveDayByLocation(ctx context.Context, locationID string) (*domain.BusinessDay, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessDay), args.Error(1)
}

func (m *MockDayRepository) SaveDay(ctx context.Context, day domain.BusinessDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockDayRepository) FindDayByIDForUpdate(ctx context.Context, tx pgx.Tx, dayID string) (*domain.BusinessDay, error) {
	args := m.Called(ctx, tx, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessDay), args.Error(1)
}

func (m *MockDayRepository) FindActiveDayForUpdate(ctx context.Context, tx pgx.Tx, locationID string) (*domain.BusinessDay, error) {
	args := m.Called(ctx, tx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessDay), args.Error(1)
}

func (m *MockDayRepository) MarkDayClosed(ctx context.Context, tx pgx.Tx, dayID string, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, tx, dayID, closedBy, closedAt)
	return args.Error(0)
}

func (m *MockDayRepository) NextSessionNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	args := m.Called(ctx, tx, dayID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDayRepository) NextSaleNumber(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	args := m.Called(ctx, tx, dayID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock type for the SessionRepositoryWithTx interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockSessionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSessionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindOpenSessionByTerminal(ctx context.Context, terminalID string) (*domain.Session, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListSessionsByDay(ctx context.Context, dayID string) ([]domain.Session, error) {
	args := m.Called(ctx, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, tx pgx.Tx, session domain.Session) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindOpenSessionByTerminalForUpdate(ctx context.Context, tx pgx.Tx, terminalID string) (*domain.Session, error) {
	args := m.Called(ctx, tx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) CountOpenSessionsByDay(ctx context.Context, tx pgx.Tx, dayID string) (int64, error) {
	args := m.Called(ctx, tx, dayID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) MarkSessionClosed(ctx context.Context, sessionID string, closingCash decimal.Decimal, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, sessionID, closingCash, closedBy, closedAt)
	return args.Error(0)
}

// MockLocationRepository is a mock type for the LocationReader interface
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

// MockUserRepository is a mock type for the UserReader interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type DayServiceTestSuite struct {
	suite.Suite
	mockDayRepo      *MockDayRepository
	mockSessionRepo  *MockSessionRepository
	mockLocationRepo *MockLocationRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.DayLedgerSvcFacade
}

func (suite *DayServiceTestSuite) SetupTest() {
	suite.mockDayRepo = new(MockDayRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockLocationRepo = new(MockLocationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewDayService(suite.mockDayRepo, suite.mockSessionRepo, suite.mockLocationRepo, suite.mockUserRepo)
}

func activeLocation(locationID string) *domain.Location {
	return &domain.Location{
		LocationID: locationID,
		Code:       "STORE1",
		Name:       "Main Street",
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *DayServiceTestSuite) TestOpenDay_Success() {
	ctx := context.Background()
	locationID := uuid.NewString()
	openedBy := uuid.NewString()
	businessDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, openedBy).Return(&domain.User{UserID: openedBy, IsActive: true}, nil).Once()
	suite.mockDayRepo.On("FindActiveDayByLocation", ctx, locationID).Return(nil, apperrors.NewNotFoundError("no open day")).Once()
	suite.mockDayRepo.On("SaveDay", ctx, mock.MatchedBy(func(day domain.BusinessDay) bool {
		return day.LocationID == locationID &&
			day.Status == domain.DayOpen &&
			day.NextSaleNumber == 1 &&
			day.NextSessionNumber == 1 &&
			day.OpenedBy == openedBy
	})).Return(nil).Once()

	day, err := suite.service.OpenDay(ctx, locationID, businessDate, openedBy, "morning shift")

	suite.Require().NoError(err)
	suite.Require().NotNil(day)
	suite.NotEmpty(day.DayID)
	suite.Equal(locationID, day.LocationID)
	suite.Equal(businessDate, day.BusinessDate)
	suite.Equal(domain.DayOpen, day.Status)
	suite.EqualValues(1, day.NextSaleNumber)
	suite.EqualValues(1, day.NextSessionNumber)
	suite.Equal("morning shift", day.Notes)
	suite.WithinDuration(time.Now(), day.OpenedAt, time.Second)

	suite.mockDayRepo.AssertExpectations(suite.T())
}

func (suite *DayServiceTestSuite) TestOpenDay_LocationNotFound() {
	ctx := context.Background()
	locationID := uuid.NewString()
	openedBy := uuid.NewString()

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(nil, apperrors.NewNotFoundError("missing")).Once()

	day, err := suite.service.OpenDay(ctx, locationID, time.Now(), openedBy, "")

	suite.Require().Error(err)
	suite.Nil(day)
	suite.ErrorIs(err, services.ErrLocationNotFound)
	suite.mockDayRepo.AssertNotCalled(suite.T(), "SaveDay", mock.Anything, mock.Anything)
}

func (suite *DayServiceTestSuite) TestOpenDay_InactiveLocation() {
	ctx := context.Background()
	locationID := uuid.NewString()
	openedBy := uuid.NewString()
	location := activeLocation(locationID)
	location.IsActive = false

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(location, nil).Once()

	day, err := suite.service.OpenDay(ctx, locationID, time.Now(), openedBy, "")

	suite.Require().Error(err)
	suite.Nil(day)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDayRepo.AssertNotCalled(suite.T(), "SaveDay", mock.Anything, mock.Anything)
}

func (suite *DayServiceTestSuite) TestOpenDay_AlreadyOpen() {
	ctx := context.Background()
	locationID := uuid.NewString()
	openedBy := uuid.NewString()
	existing := &domain.BusinessDay{
		DayID:      uuid.NewString(),
		LocationID: locationID,
		Status:     domain.DayOpen,
		OpenedAt:   time.Now().Add(-2 * time.Hour),
	}

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, openedBy).Return(&domain.User{UserID: openedBy, IsActive: true}, nil).Once()
	suite.mockDayRepo.On("FindActiveDayByLocation", ctx, locationID).Return(existing, nil).Once()

	day, err := suite.service.OpenDay(ctx, locationID, time.Now(), openedBy, "")

	suite.Require().Error(err)
	suite.Nil(day)
	suite.ErrorIs(err, services.ErrDayAlreadyOpen)
	suite.mockDayRepo.AssertNotCalled(suite.T(), "SaveDay", mock.Anything, mock.Anything)
}

func (suite *DayServiceTestSuite) TestOpenDay_LosesInsertRace() {
	ctx := context.Background()
	locationID := uuid.NewString()
	openedBy := uuid.NewString()

	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, openedBy).Return(&domain.User{UserID: openedBy, IsActive: true}, nil).Once()
	suite.mockDayRepo.On("FindActiveDayByLocation", ctx, locationID).Return(nil, apperrors.NewNotFoundError("no open day")).Once()
	// A concurrent opener inserted first; the unique index rejects this one.
	suite.mockDayRepo.On("SaveDay", ctx, mock.AnythingOfType("domain.BusinessDay")).Return(apperrors.NewConflictError("duplicate open day")).Once()

	day, err := suite.service.OpenDay(ctx, locationID, time.Now(), openedBy, "")

	suite.Require().Error(err)
	suite.Nil(day)
	suite.ErrorIs(err, services.ErrDayAlreadyOpen)
	suite.mockDayRepo.AssertExpectations(suite.T())
}

func (suite *DayServiceTestSuite) TestCloseDay_Success() {
	ctx := context.Background()
	dayID := uuid.NewString()
	closedBy := uuid.NewString()
	day := &domain.BusinessDay{
		DayID:      dayID,
		LocationID: uuid.NewString(),
		Status:     domain.DayOpen,
	}

	suite.mockDayRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindDayByIDForUpdate", ctx, mock.Anything, dayID).Return(day, nil).Once()
	suite.mockSessionRepo.On("CountOpenSessionsByDay", ctx, mock.Anything, dayID).Return(int64(0), nil).Once()
	suite.mockDayRepo.On("MarkDayClosed", ctx, mock.Anything, dayID, closedBy, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDayRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockDayRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	closed, err := suite.service.CloseDay(ctx, dayID, closedBy)

	suite.Require().NoError(err)
	suite.Require().NotNil(closed)
	suite.Equal(domain.DayClosed, closed.Status)
	suite.Require().NotNil(closed.ClosedBy)
	suite.Equal(closedBy, *closed.ClosedBy)
	suite.Require().NotNil(closed.ClosedAt)
	suite.WithinDuration(time.Now(), *closed.ClosedAt, time.Second)

	suite.mockDayRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *DayServiceTestSuite) TestCloseDay_OpenSessionsExist() {
	ctx := context.Background()
	dayID := uuid.NewString()
	closedBy := uuid.NewString()
	day := &domain.BusinessDay{DayID: dayID, Status: domain.DayOpen}

	suite.mockDayRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindDayByIDForUpdate", ctx, mock.Anything, dayID).Return(day, nil).Once()
	suite.mockSessionRepo.On("CountOpenSessionsByDay", ctx, mock.Anything, dayID).Return(int64(2), nil).Once()
	suite.mockDayRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	closed, err := suite.service.CloseDay(ctx, dayID, closedBy)

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, services.ErrOpenSessionsExist)
	suite.mockDayRepo.AssertNotCalled(suite.T(), "MarkDayClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDayRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DayServiceTestSuite) TestCloseDay_NotOpen() {
	ctx := context.Background()
	dayID := uuid.NewString()
	closedBy := uuid.NewString()
	day := &domain.BusinessDay{DayID: dayID, Status: domain.DayClosed}

	suite.mockDayRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindDayByIDForUpdate", ctx, mock.Anything, dayID).Return(day, nil).Once()
	suite.mockDayRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	closed, err := suite.service.CloseDay(ctx, dayID, closedBy)

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, services.ErrDayNotOpen)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CountOpenSessionsByDay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DayServiceTestSuite) TestCloseDay_NotFound() {
	ctx := context.Background()
	dayID := uuid.NewString()

	suite.mockDayRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindDayByIDForUpdate", ctx, mock.Anything, dayID).Return(nil, apperrors.NewNotFoundError("missing day")).Once()
	suite.mockDayRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	closed, err := suite.service.CloseDay(ctx, dayID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DayServiceTestSuite) TestGetActiveDay_Success() {
	ctx := context.Background()
	locationID := uuid.NewString()
	expected := &domain.BusinessDay{DayID: uuid.NewString(), LocationID: locationID, Status: domain.DayOpen}

	suite.mockDayRepo.On("FindActiveDayByLocation", ctx, locationID).Return(expected, nil).Once()

	day, err := suite.service.GetActiveDay(ctx, locationID)

	suite.Require().NoError(err)
	suite.Equal(expected, day)
	suite.mockDayRepo.AssertExpectations(suite.T())
}

func (suite *DayServiceTestSuite) TestGetActiveDay_None() {
	ctx := context.Background()
	locationID := uuid.NewString()

	suite.mockDayRepo.On("FindActiveDayByLocation", ctx, locationID).Return(nil, apperrors.NewNotFoundError("no open day")).Once()

	day, err := suite.service.GetActiveDay(ctx, locationID)

	suite.Require().Error(err)
	suite.Nil(day)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DayServiceTestSuite) TestCloseDay_BeginError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockDayRepo.On("Begin", ctx).Return(nil, expectedErr).Once()

	closed, err := suite.service.CloseDay(ctx, uuid.NewString(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Test Suite ---

func TestDayService(t *testing.T) {
	suite.Run(t, new(DayServiceTestSuite))
}
