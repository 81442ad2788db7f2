package services

import (
	"context"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	"github.com/storeops/pos_lifecycle_app/internal/dto"
)

// LifecycleSvcFacade is the externally consumed façade over the day ledger,
// session ledger and terminal registry. It owns the cross-entity ordering
// rule (day → session → session close → day close), resolves terminals when
// callers supply a hostname instead of an ID, and emits domain events on the
// closing transitions.
type LifecycleSvcFacade interface {
	// OpenBusinessDay opens a trading day for a location.
	OpenBusinessDay(ctx context.Context, locationID string, req dto.OpenDayRequest, openedBy string) (*domain.BusinessDay, error)

	// GetActiveBusinessDay retrieves the OPEN day for a location.
	GetActiveBusinessDay(ctx context.Context, locationID string) (*domain.BusinessDay, error)

	// OpenCashierSession opens a session, resolving the terminal by hostname
	// when the request carries no terminal ID.
	OpenCashierSession(ctx context.Context, req dto.OpenSessionRequest, requestedBy string) (*domain.Session, error)

	// CloseCashierSession closes a session and publishes SessionClosed.
	CloseCashierSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, closedBy string) (*domain.Session, error)

	// CloseBusinessDay closes a day once every hosted session is CLOSED and
	// publishes DayClosed.
	CloseBusinessDay(ctx context.Context, dayID string, closedBy string) (*domain.BusinessDay, error)
}
