package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

func testProduct(t *testing.T) *model.Product {
	t.Helper()
	p, err := model.NewProduct("Widget", 3, 2.5, "A1")
	require.NoError(t, err)
	return p
}

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus(logger.NewNop())
	var order []string

	bus.Subscribe(ListenerFunc(func(p *model.Product) { order = append(order, "first") }))
	bus.Subscribe(ListenerFunc(func(p *model.Product) { order = append(order, "second") }))
	bus.Subscribe(ListenerFunc(func(p *model.Product) { order = append(order, "third") }))

	bus.Publish(testProduct(t))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribeByHandle(t *testing.T) {
	bus := NewBus(logger.NewNop())
	var calls []string

	bus.Subscribe(ListenerFunc(func(p *model.Product) { calls = append(calls, "a") }))
	h := bus.Subscribe(ListenerFunc(func(p *model.Product) { calls = append(calls, "b") }))
	bus.Subscribe(ListenerFunc(func(p *model.Product) { calls = append(calls, "c") }))
	require.Equal(t, 3, bus.Len())

	bus.Unsubscribe(h)
	assert.Equal(t, 2, bus.Len())

	bus.Publish(testProduct(t))
	assert.Equal(t, []string{"a", "c"}, calls)

	// Unknown handles are ignored.
	bus.Unsubscribe(Handle("missing"))
	assert.Equal(t, 2, bus.Len())
}

func TestListenerPanicDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(logger.NewNop())
	delivered := false

	bus.Subscribe(ListenerFunc(func(p *model.Product) { panic("listener bug") }))
	bus.Subscribe(ListenerFunc(func(p *model.Product) { delivered = true }))

	require.NotPanics(t, func() { bus.Publish(testProduct(t)) })
	assert.True(t, delivered)
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus(logger.NewNop())
	var calls []string
	var second Handle

	bus.Subscribe(ListenerFunc(func(p *model.Product) {
		calls = append(calls, "a")
		bus.Unsubscribe(second)
	}))
	second = bus.Subscribe(ListenerFunc(func(p *model.Product) { calls = append(calls, "b") }))
	bus.Subscribe(ListenerFunc(func(p *model.Product) { calls = append(calls, "c") }))

	// The in-flight publish still reaches everything subscribed at its
	// start; the removal takes effect on the next one.
	bus.Publish(testProduct(t))
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	bus.Publish(testProduct(t))
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, calls)
}

func TestSameListenerSubscribedTwice(t *testing.T) {
	bus := NewBus(logger.NewNop())
	count := 0
	l := ListenerFunc(func(p *model.Product) { count++ })

	h1 := bus.Subscribe(l)
	h2 := bus.Subscribe(l)
	assert.NotEqual(t, h1, h2)

	bus.Publish(testProduct(t))
	assert.Equal(t, 2, count)

	bus.Unsubscribe(h1)
	bus.Publish(testProduct(t))
	assert.Equal(t, 3, count)
}
