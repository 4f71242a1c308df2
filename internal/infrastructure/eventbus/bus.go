package eventbus

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/motorhall/showroom/internal/domain/event"
	"github.com/motorhall/showroom/internal/observability"
	"github.com/motorhall/showroom/internal/observability/logctx"
)

const componentBus = "eventbus"

// Bus is an in-memory notification bus. Publish fans out synchronously and
// in order to the subscribers registered at publish time; a failing or
// panicking handler is logged and isolated so the remaining handlers still
// run. Nothing survives a restart; this is not a durable queue.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]event.Handler
	log    observability.Logger
	events observability.Counter
}

func New(logger observability.Logger, metrics observability.Metrics) *Bus {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if metrics == nil {
		metrics = observability.NopMetrics()
	}
	return &Bus{
		subs:   make(map[string][]event.Handler),
		log:    logger.With(observability.F("component", componentBus)),
		events: metrics.Counter(observability.MEventsPublished),
	}
}

func (b *Bus) Subscribe(eventName string, h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	if e == nil {
		return nil
	}
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]event.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	b.events.Add(1, observability.L("event", name))

	if len(handlers) == 0 {
		logctx.FromOr(ctx, b.log).Debug("event_dropped_no_subscriber",
			observability.F("event", name),
		)
		return nil
	}

	for _, h := range handlers {
		b.deliver(ctx, e, h)
	}

	logctx.FromOr(ctx, b.log).Debug("event_fanned_out",
		observability.F("event", name),
		observability.F("handlers", len(handlers)),
	)
	return nil
}

func (b *Bus) deliver(ctx context.Context, e event.Event, h event.Handler) {
	name := e.EventName()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event_handler_panic",
				observability.F("event", name),
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
		}
	}()

	if err := h(ctx, e); err != nil {
		b.log.Warn("event_handler_error",
			observability.F("event", name),
			observability.F("error", err.Error()),
		)
	}
}
