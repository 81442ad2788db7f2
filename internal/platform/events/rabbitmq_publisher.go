package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
)

const (
	sessionClosedQueue = "pos.session.closed"
	dayClosedQueue     = "pos.day.closed"
)

// RabbitMQPublisher delivers lifecycle events to durable queues as
// persistent JSON messages. Connections are short-lived per publish: close
// events are rare (a handful per terminal per day) and a standing channel is
// not worth the reconnect bookkeeping.
type RabbitMQPublisher struct {
	url    string
	logger *slog.Logger
}

// NewRabbitMQPublisher creates an event publisher against the given AMQP URL.
func NewRabbitMQPublisher(url string, logger *slog.Logger) portssvc.EventPublisher {
	return &RabbitMQPublisher{url: url, logger: logger}
}

var _ portssvc.EventPublisher = (*RabbitMQPublisher)(nil)

func (p *RabbitMQPublisher) PublishSessionClosed(ctx context.Context, event domain.SessionClosedEvent) error {
	return p.publish(ctx, sessionClosedQueue, event)
}

func (p *RabbitMQPublisher) PublishDayClosed(ctx context.Context, event domain.DayClosedEvent) error {
	return p.publish(ctx, dayClosedQueue, event)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, queue string, event any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Error("Failed to dial AMQP broker", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error("Failed to open AMQP channel", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.logger.Error("Failed to declare queue", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish event", slog.String("queue", queue), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NoopPublisher discards events. Used when no AMQP URL is configured, e.g.
// in local development.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishSessionClosed(ctx context.Context, event domain.SessionClosedEvent) error {
	return nil
}

func (NoopPublisher) PublishDayClosed(ctx context.Context, event domain.DayClosedEvent) error {
	return nil
}
