package events

import (
	"context"
	"fmt"
	"sync"
)

// HandlerFunc handles one domain event.
type HandlerFunc func(ctx context.Context, event *Event) error

// Dispatcher routes events to handlers registered per event type. The
// wildcard type "*" receives every event.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler

	// ContinueOnError keeps dispatching to the remaining handlers when
	// one fails; errors are collected either way.
	ContinueOnError bool
}

type namedHandler struct {
	name    string
	handler HandlerFunc
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]namedHandler)}
}

// Register adds a handler for the given event types.
func (d *Dispatcher) Register(name string, handler HandlerFunc, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	nh := namedHandler{name: name, handler: handler}
	for _, t := range eventTypes {
		d.handlers[t] = append(d.handlers[t], nh)
	}
}

// RegisterWildcard adds a handler for all events.
func (d *Dispatcher) RegisterWildcard(name string, handler HandlerFunc) {
	d.Register(name, handler, "*")
}

// Dispatch delivers the event to every matching handler.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	d.mu.RLock()
	matched := make([]namedHandler, 0, len(d.handlers[event.Type])+len(d.handlers["*"]))
	matched = append(matched, d.handlers[event.Type]...)
	matched = append(matched, d.handlers["*"]...)
	d.mu.RUnlock()

	var firstErr error
	for _, nh := range matched {
		if err := nh.handler(ctx, event); err != nil {
			wrapped := fmt.Errorf("handler %s: %w", nh.name, err)
			if !d.ContinueOnError {
				return wrapped
			}
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}
	return firstErr
}
