package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	contractmq "projectdesk/contracts/mq"
	"projectdesk/pkg/logger"
	"projectdesk/pkg/metrics"
	"projectdesk/pkg/trace"
)

// Repository is the storage contract shared by every resource. Both the
// PostgreSQL and the in-memory drivers implement it.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	Insert(ctx context.Context, rec *T) (int, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// notifier publishes change events. Publishing never fails the request:
// the write is already committed, so errors are only logged and counted.
type notifier struct {
	publisher EventPublisher
	logger    *zap.Logger
}

func (n notifier) changed(ctx context.Context, resource, action string, id int, data any) {
	key := contractmq.RoutingKey(resource, action)
	payload := contractmq.ResourceChangedPayload{
		Resource:   resource,
		Action:     action,
		ID:         id,
		Data:       data,
		OccurredAt: time.Now().UTC(),
		TraceID:    trace.FromContext(ctx),
	}

	if err := n.publisher.Publish(ctx, key, payload); err != nil {
		logger.WithTrace(ctx, n.logger).Warn("Failed to publish change event",
			zap.String("routing_key", key),
			zap.Int("id", id),
			zap.Error(err),
		)
		metrics.IncrementEventPublished(key, "failed")
		return
	}
	metrics.IncrementEventPublished(key, "success")
}
