package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

const eventBuffer = 16

// Dispatcher routes named actions and fans out events.
type Dispatcher struct {
	mu      sync.RWMutex
	actions map[string]Action
	events  chan Event
	closed  bool
	logger  *slog.Logger
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		actions: make(map[string]Action),
		events:  make(chan Event, eventBuffer),
		logger:  logger,
	}
}

// Register adds actions. Names must be unique.
func (d *Dispatcher) Register(actions ...Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range actions {
		if _, ok := d.actions[a.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAction, a.Name())
		}
		d.actions[a.Name()] = a
	}
	return nil
}

// Names returns the registered action names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description of a registered action.
func (d *Dispatcher) Describe(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.actions[name]
	if !ok {
		return "", false
	}
	return a.Description(), true
}

// Dispatch runs the named action with args.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	d.mu.RLock()
	a, ok := d.actions[name]
	d.mu.RUnlock()
	if !ok {
		return nil, &UnknownActionError{Name: name}
	}

	d.logger.Debug("dispatch", "action", name)
	res, err := a.Execute(ctx, args)
	if err != nil {
		d.logger.Debug("action failed", "action", name, "error", err)
	}
	return res, err
}

// Runner runs actions by name. *Dispatcher is the production Runner.
type Runner interface {
	Dispatch(ctx context.Context, name string, args map[string]any) (any, error)
}

// Call dispatches and asserts the result type.
func Call[Resp any](ctx context.Context, d Runner, name string, args map[string]any) (Resp, error) {
	var zero Resp
	res, err := d.Dispatch(ctx, name, args)
	if err != nil {
		return zero, err
	}
	typed, ok := res.(Resp)
	if !ok {
		return zero, &ResultTypeError{Action: name, Got: res}
	}
	return typed, nil
}

// Events returns the event channel. It is closed by Close.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// Emit queues ev without blocking. Events are dropped, with a warning, when
// nobody drains the channel.
func (d *Dispatcher) Emit(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.events <- ev:
	default:
		d.logger.Warn("event dropped", "kind", ev.Kind, "path", ev.Path)
	}
}

// Close closes the event channel. Later emits are ignored.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
}
