package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/shared"
)

// InMemoryEventBus dispatches domain events to subscribed handlers
// synchronously, in process. Handler failures are logged and never
// propagate to the publisher.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   logger.Named("eventbus"),
	}
}

// Subscribe registers a handler. When no event types are given the
// handler's own EventTypes are used; an empty result subscribes it to
// all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{wildcard}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

const wildcard = "*"

// Publish dispatches events to all matching handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		b.mu.RLock()
		handlers := make([]shared.EventHandler, 0, len(b.handlers[e.EventType()])+len(b.handlers[wildcard]))
		handlers = append(handlers, b.handlers[e.EventType()]...)
		handlers = append(handlers, b.handlers[wildcard]...)
		b.mu.RUnlock()

		for _, h := range handlers {
			if err := b.dispatch(ctx, h, e); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", e.EventType()),
					zap.String("event_id", e.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// dispatch invokes one handler, containing panics
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", e.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, e)
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)

// ActivityLogger is a catch-all handler that writes one structured log
// line per domain event, giving shops a lightweight activity trail.
type ActivityLogger struct {
	logger *zap.Logger
}

// NewActivityLogger creates an activity-logging event handler
func NewActivityLogger(logger *zap.Logger) *ActivityLogger {
	return &ActivityLogger{logger: logger.Named("activity")}
}

// EventTypes returns empty so the handler receives every event
func (l *ActivityLogger) EventTypes() []string { return nil }

// Handle logs the event
func (l *ActivityLogger) Handle(_ context.Context, e shared.DomainEvent) error {
	l.logger.Info("domain event",
		zap.String("event_type", e.EventType()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.String("aggregate_id", e.AggregateID().String()),
		zap.String("tenant_id", e.TenantID().String()),
		zap.Time("occurred_at", e.OccurredAt()),
	)
	return nil
}

var _ shared.EventHandler = (*ActivityLogger)(nil)
