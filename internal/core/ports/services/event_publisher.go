package services

import (
	"context"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// EventPublisher is the sink for lifecycle domain events consumed by
// downstream reconciliation and reporting. Publishing is best effort: a
// failed publish must never fail the closing operation that produced it.
type EventPublisher interface {
	PublishSessionClosed(ctx context.Context, event domain.SessionClosedEvent) error
	PublishDayClosed(ctx context.Context, event domain.DayClosedEvent) error
}
