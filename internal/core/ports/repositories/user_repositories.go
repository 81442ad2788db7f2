package repositories

import (
	"context"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// UserReader defines the cashier identity lookup consumed from the external
// identity service's user table.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
