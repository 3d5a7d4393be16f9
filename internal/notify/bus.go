package notify

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

// Listener receives a callback whenever a product's stock state changes.
type Listener interface {
	OnProductChanged(p *model.Product)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(p *model.Product)

func (f ListenerFunc) OnProductChanged(p *model.Product) { f(p) }

// Handle identifies one subscription for later removal.
type Handle string

type subscription struct {
	handle   Handle
	listener Listener
}

// Bus is an ordered registry of change listeners. Publish delivers to every
// listener synchronously in subscription order; a panicking listener is
// recovered and logged so the remaining listeners still run.
//
// The bus is not safe for concurrent use; like the rest of the catalog it
// expects a single logical thread of control.
type Bus struct {
	subs   []subscription
	logger logger.ZapLogger
}

func NewBus(log logger.ZapLogger) *Bus {
	return &Bus{logger: log}
}

// Subscribe registers the listener and returns the handle to unsubscribe
// with. The same listener can be subscribed more than once; each
// subscription is delivered independently.
func (b *Bus) Subscribe(l Listener) Handle {
	h := Handle(uuid.New().String())
	b.subs = append(b.subs, subscription{handle: h, listener: l})
	return h
}

// Unsubscribe removes the subscription for the given handle. Unknown handles
// are ignored.
func (b *Bus) Unsubscribe(h Handle) {
	for i, sub := range b.subs {
		if sub.handle == h {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish notifies every subscriber about a product change, in subscription
// order. Delivery goes to the subscriptions present when Publish started, so
// a listener that subscribes or unsubscribes during delivery changes the
// next publish, not this one.
func (b *Bus) Publish(p *model.Product) {
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	for _, sub := range subs {
		b.deliver(sub, p)
	}
}

func (b *Bus) deliver(sub subscription, p *model.Product) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("stock listener panicked",
				zap.String("handle", string(sub.handle)),
				zap.String("product", p.Name()),
				zap.Any("panic", r),
			)
		}
	}()
	sub.listener.OnProductChanged(p)
}

// Len reports the number of active subscriptions.
func (b *Bus) Len() int { return len(b.subs) }
