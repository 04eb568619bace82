package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Handler processes a domain event. Handlers must be idempotent: a
// publish retry after a partial failure can deliver the same event twice.
type Handler interface {
	Handle(ctx context.Context, event shared.DomainEvent) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, event shared.DomainEvent) error

// Handle implements Handler
func (f HandlerFunc) Handle(ctx context.Context, event shared.DomainEvent) error {
	return f(ctx, event)
}

// wildcard subscribes a handler to every event type
const wildcard = "*"

// InMemoryEventBus dispatches domain events to subscribed handlers
// synchronously, in the publishing goroutine. Handler failures are
// logged and do not fail the publish: events are best-effort signals,
// the aggregates themselves are already persisted.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the given event types. With no
// types the handler receives every event.
func (b *InMemoryEventBus) Subscribe(handler Handler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		b.handlers[wildcard] = append(b.handlers[wildcard], handler)
		return
	}
	for _, eventType := range eventTypes {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
	}
}

// Publish implements shared.EventPublisher
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		b.mu.RLock()
		handlers := make([]Handler, 0, len(b.handlers[evt.EventType()])+len(b.handlers[wildcard]))
		handlers = append(handlers, b.handlers[evt.EventType()]...)
		handlers = append(handlers, b.handlers[wildcard]...)
		b.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler.Handle(ctx, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err))
			}
		}
	}
	return nil
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)
