package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
	}
}

func TestInMemoryEventBus_SubscribeByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	var received []string
	bus.Subscribe(HandlerFunc(func(_ context.Context, event shared.DomainEvent) error {
		received = append(received, event.EventType())
		return nil
	}), "order.confirmed")

	err := bus.Publish(context.Background(),
		newTestEvent("order.confirmed"),
		newTestEvent("order.cancelled"))
	require.NoError(t, err)

	assert.Equal(t, []string{"order.confirmed"}, received)
}

func TestInMemoryEventBus_WildcardReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	var count int
	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		count++
		return nil
	}))

	err := bus.Publish(context.Background(),
		newTestEvent("order.confirmed"),
		newTestEvent("invoice.paid"),
		newTestEvent("stock.adjusted"))
	require.NoError(t, err)

	assert.Equal(t, 3, count)
}

func TestInMemoryEventBus_HandlerFailureDoesNotFailPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		return errors.New("handler boom")
	}))

	var delivered bool
	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		delivered = true
		return nil
	}))

	err := bus.Publish(context.Background(), newTestEvent("order.confirmed"))
	require.NoError(t, err)
	assert.True(t, delivered)
}
