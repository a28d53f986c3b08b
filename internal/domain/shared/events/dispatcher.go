package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"

// Dispatcher delivers events synchronously, in subscription order, on the
// caller's goroutine. A failing handler does not stop later handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for eventType, or for AllEvents.
func (d *Dispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// PublishAll runs every matching handler and joins their errors.
func (d *Dispatcher) PublishAll(ctx context.Context, evts []DomainEvent) error {
	var errs []error
	for _, evt := range evts {
		for _, h := range d.handlersFor(evt.GetEventType()) {
			if !h.CanHandle(evt.GetEventType()) {
				continue
			}
			if err := h.Handle(ctx, evt); err != nil {
				errs = append(errs, fmt.Errorf("handle %s: %w", evt.GetEventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) handlersFor(eventType string) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	specific := d.handlers[eventType]
	wildcard := d.handlers[AllEvents]
	out := make([]EventHandler, 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	return append(out, wildcard...)
}

// HandlerFunc adapts a function into an EventHandler for one event type
// (or AllEvents).
type HandlerFunc struct {
	eventType string
	fn        func(ctx context.Context, event DomainEvent) error
}

func NewHandlerFunc(eventType string, fn func(ctx context.Context, event DomainEvent) error) *HandlerFunc {
	return &HandlerFunc{eventType: eventType, fn: fn}
}

func (h *HandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, event)
}

func (h *HandlerFunc) CanHandle(eventType string) bool {
	return h.eventType == AllEvents || h.eventType == eventType
}
