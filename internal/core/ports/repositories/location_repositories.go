package repositories

import (
	"context"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// LocationReader defines read-only access to location master data, which is
// provisioned by an external system.
type LocationReader interface {
	// FindLocationByID retrieves a location by its unique identifier.
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)
}
