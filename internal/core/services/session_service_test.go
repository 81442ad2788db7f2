package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/storeops/pos_lifecycle_app/internal/apperrors"
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
	"github.com/storeops/pos_lifecycle_app/internal/core/services"
)

// --- Test Suite Setup ---

type SessionServiceTestSuite struct {
	suite.Suite
	mockSessionRepo  *MockSessionRepository
	mockDayRepo      *MockDayRepository
	mockTerminalRepo *MockTerminalRepository
	mockLocationRepo *MockLocationRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.SessionLedgerSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockDayRepo = new(MockDayRepository)
	suite.mockTerminalRepo = new(MockTerminalRepository)
	suite.mockLocationRepo = new(MockLocationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSessionService(
		suite.mockSessionRepo,
		suite.mockDayRepo,
		suite.mockTerminalRepo,
		suite.mockLocationRepo,
		suite.mockUserRepo,
	)
}

func activeTerminal(terminalID, locationID string) *domain.Terminal {
	return &domain.Terminal{
		TerminalID:   terminalID,
		LocationID:   locationID,
		TerminalCode: "T01",
		Name:         "Register 1",
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *SessionServiceTestSuite) TestOpenSession_Success() {
	ctx := context.Background()
	terminalID := uuid.NewString()
	locationID := uuid.NewString()
	cashierID := uuid.NewString()
	dayID := uuid.NewString()
	openingCash := decimal.NewFromFloat(150.00)
	day := &domain.BusinessDay{DayID: dayID, LocationID: locationID, Status: domain.DayOpen}

	suite.mockTerminalRepo.On("FindTerminalByID", ctx, terminalID).Return(activeTerminal(terminalID, locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, cashierID).Return(&domain.User{UserID: cashierID, IsActive: true}, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockSessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindActiveDayForUpdate", ctx, mock.Anything, locationID).Return(day, nil).Once()
	suite.mockSessionRepo.On("FindOpenSessionByTerminalForUpdate", ctx, mock.Anything, terminalID).Return(nil, apperrors.NewNotFoundError("idle")).Once()
	suite.mockDayRepo.On("NextSessionNumber", ctx, mock.Anything, dayID).Return(int64(3), nil).Once()
	suite.mockSessionRepo.On("SaveSession", ctx, mock.Anything, mock.MatchedBy(func(s domain.Session) bool {
		return s.BusinessDayID == dayID &&
			s.TerminalID == terminalID &&
			s.CashierID == cashierID &&
			s.Status == domain.SessionOpen &&
			s.SessionNumber == "STORE1-0003" &&
			s.OpeningCash.Equal(openingCash)
	})).Return(nil).Once()
	suite.mockSessionRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockSessionRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	session, err := suite.service.OpenSession(ctx, terminalID, cashierID, openingCash)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.NotEmpty(session.SessionID)
	suite.Equal("STORE1-0003", session.SessionNumber)
	suite.Equal(domain.SessionOpen, session.Status)
	suite.Nil(session.ClosingCash)
	suite.WithinDuration(time.Now(), session.OpenedAt, time.Second)

	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockDayRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestOpenSession_NegativeOpeningCash() {
	ctx := context.Background()

	session, err := suite.service.OpenSession(ctx, uuid.NewString(), uuid.NewString(), decimal.NewFromFloat(-10))

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, services.ErrInvalidOpeningCash)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_TerminalNotFound() {
	ctx := context.Background()
	terminalID := uuid.NewString()

	suite.mockTerminalRepo.On("FindTerminalByID", ctx, terminalID).Return(nil, apperrors.NewNotFoundError("missing")).Once()

	session, err := suite.service.OpenSession(ctx, terminalID, uuid.NewString(), decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, services.ErrTerminalNotFound)
}

func (suite *SessionServiceTestSuite) TestOpenSession_TerminalInactive() {
	ctx := context.Background()
	terminalID := uuid.NewString()
	terminal := activeTerminal(terminalID, uuid.NewString())
	terminal.IsActive = false

	suite.mockTerminalRepo.On("FindTerminalByID", ctx, terminalID).Return(terminal, nil).Once()

	session, err := suite.service.OpenSession(ctx, terminalID, uuid.NewString(), decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, services.ErrTerminalInactive)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_NoActiveDay() {
	ctx := context.Background()
	terminalID := uuid.NewString()
	locationID := uuid.NewString()
	cashierID := uuid.NewString()

	suite.mockTerminalRepo.On("FindTerminalByID", ctx, terminalID).Return(activeTerminal(terminalID, locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, cashierID).Return(&domain.User{UserID: cashierID, IsActive: true}, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockSessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindActiveDayForUpdate", ctx, mock.Anything, locationID).Return(nil, apperrors.NewNotFoundError("no open day")).Once()
	suite.mockSessionRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	session, err := suite.service.OpenSession(ctx, terminalID, cashierID, decimal.NewFromFloat(100))

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, services.ErrNoActiveDay)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_TerminalBusy() {
	ctx := context.Background()
	terminalID := uuid.NewString()
	locationID := uuid.NewString()
	cashierID := uuid.NewString()
	dayID := uuid.NewString()
	day := &domain.BusinessDay{DayID: dayID, LocationID: locationID, Status: domain.DayOpen}
	blocking := &domain.Session{
		SessionID:     uuid.NewString(),
		SessionNumber: "STORE1-0001",
		TerminalID:    terminalID,
		CashierID:     uuid.NewString(),
		Status:        domain.SessionOpen,
		OpenedAt:      time.Now().Add(-time.Hour),
	}

	suite.mockTerminalRepo.On("FindTerminalByID", ctx, terminalID).Return(activeTerminal(terminalID, locationID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, cashierID).Return(&domain.User{UserID: cashierID, IsActive: true}, nil).Once()
	suite.mockLocationRepo.On("FindLocationByID", ctx, locationID).Return(activeLocation(locationID), nil).Once()
	suite.mockSessionRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDayRepo.On("FindActiveDayForUpdate", ctx, mock.Anything, locationID).Return(day, nil).Once()
	suite.mockSessionRepo.On("FindOpenSessionByTerminalForUpdate", ctx, mock.Anything, terminalID).Return(blocking, nil).Once()
	suite.mockSessionRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	session, err := suite.service.OpenSession(ctx, terminalID, cashierID, decimal.NewFromFloat(100))

	suite.Require().Error(err)
	suite.Nil(session)

	var busyErr *services.TerminalBusyError
	suite.Require().ErrorAs(err, &busyErr)
	suite.Equal(blocking.SessionID, busyErr.SessionID)
	suite.Equal(blocking.SessionNumber, busyErr.SessionNumber)
	suite.Equal(blocking.CashierID, busyErr.CashierID)

	suite.mockDayRepo.AssertNotCalled(suite.T(), "NextSessionNumber", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "SaveSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_Success() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	closedBy := uuid.NewString()
	closingCash := decimal.NewFromFloat(1250.75)
	open := &domain.Session{
		SessionID:     sessionID,
		SessionNumber: "STORE1-0001",
		Status:        domain.SessionOpen,
		OpeningCash:   decimal.NewFromFloat(150),
		OpenedAt:      time.Now().Add(-8 * time.Hour),
	}

	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(open, nil).Once()
	suite.mockSessionRepo.On("MarkSessionClosed", ctx, sessionID, closingCash, closedBy, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, sessionID, closingCash, closedBy)

	suite.Require().NoError(err)
	suite.Require().NotNil(closed)
	suite.Equal(domain.SessionClosed, closed.Status)
	suite.Require().NotNil(closed.ClosingCash)
	suite.True(closed.ClosingCash.Equal(closingCash))
	suite.Require().NotNil(closed.ClosedAt)
	suite.WithinDuration(time.Now(), *closed.ClosedAt, time.Second)

	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_NegativeClosingCash() {
	ctx := context.Background()

	closed, err := suite.service.CloseSession(ctx, uuid.NewString(), decimal.NewFromFloat(-1), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, services.ErrInvalidClosingCash)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "MarkSessionClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_AlreadyClosed() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	closed := &domain.Session{SessionID: sessionID, Status: domain.SessionClosed}

	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(closed, nil).Once()

	result, err := suite.service.CloseSession(ctx, sessionID, decimal.Zero, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrSessionNotOpen)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "MarkSessionClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestCloseSession_LosesCloseRace() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	closedBy := uuid.NewString()
	open := &domain.Session{SessionID: sessionID, Status: domain.SessionOpen}

	suite.mockSessionRepo.On("FindSessionByID", ctx, sessionID).Return(open, nil).Once()
	// A concurrent close flipped the status between the read and the update.
	suite.mockSessionRepo.On("MarkSessionClosed", ctx, sessionID, mock.Anything, closedBy, mock.AnythingOfType("time.Time")).
		Return(apperrors.NewValidationFailedError("session is not open")).Once()

	result, err := suite.service.CloseSession(ctx, sessionID, decimal.Zero, closedBy)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrSessionNotOpen)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestGetOpenSessionForTerminal_Idle() {
	ctx := context.Background()
	terminalID := uuid.NewString()

	suite.mockSessionRepo.On("FindOpenSessionByTerminal", ctx, terminalID).Return(nil, apperrors.NewNotFoundError("idle")).Once()

	session, err := suite.service.GetOpenSessionForTerminal(ctx, terminalID)

	suite.Require().Error(err)
	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SessionServiceTestSuite) TestListSessionsForDay_Success() {
	ctx := context.Background()
	dayID := uuid.NewString()
	expected := []domain.Session{
		{SessionID: uuid.NewString(), SessionNumber: "STORE1-0001", Status: domain.SessionClosed},
		{SessionID: uuid.NewString(), SessionNumber: "STORE1-0002", Status: domain.SessionOpen},
	}

	suite.mockSessionRepo.On("ListSessionsByDay", ctx, dayID).Return(expected, nil).Once()

	sessions, err := suite.service.ListSessionsForDay(ctx, dayID)

	suite.Require().NoError(err)
	suite.Equal(expected, sessions)
}

// --- Run Test Suite ---

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
