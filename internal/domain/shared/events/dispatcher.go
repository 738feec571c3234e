package events

import (
	"errors"
	"fmt"
	"sync"

	"solarops/internal/shared/goroutine"
	"solarops/internal/shared/logger"
)

const defaultQueueSize = 100

var (
	ErrDispatcherNotRunning = errors.New("event dispatcher is not running")
	ErrDispatcherQueueFull  = errors.New("event queue is full")
)

type dispatcherState int

const (
	stateIdle dispatcherState = iota
	stateRunning
	stateStopped
)

// InMemoryEventDispatcher fans events out to subscribed handlers from a single
// queue. Handler errors and panics are logged, never returned to publishers.
// A dispatcher runs once: after Stop it cannot be started again.
type InMemoryEventDispatcher struct {
	mu       sync.RWMutex
	state    dispatcherState
	handlers map[string][]EventHandler
	queue    chan DomainEvent
	done     chan struct{}
	logger   logger.Interface
}

// NewInMemoryEventDispatcher creates a dispatcher holding at most queueSize
// undelivered events.
func NewInMemoryEventDispatcher(queueSize int, log logger.Interface) *InMemoryEventDispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		queue:    make(chan DomainEvent, queueSize),
		done:     make(chan struct{}),
		logger:   log,
	}
}

// Publish enqueues event. It fails instead of blocking when the queue is full.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	// The read lock is held across the send so Stop cannot close the queue underneath it.
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.state != stateRunning {
		return ErrDispatcherNotRunning
	}
	select {
	case d.queue <- event:
		return nil
	default:
		return ErrDispatcherQueueFull
	}
}

// PublishAll publishes every event and reports all failures together.
func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			errs = append(errs, fmt.Errorf("%s for %s: %w", event.GetEventType(), event.GetAggregateID(), err))
		}
	}
	return errors.Join(errs...)
}

func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return errors.New("event type is required")
	}
	if handler == nil {
		return errors.New("event handler is required")
	}

	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.mu.Unlock()
	return nil
}

func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case stateRunning:
		return errors.New("event dispatcher is already running")
	case stateStopped:
		return errors.New("event dispatcher has been stopped")
	}
	d.state = stateRunning
	go d.run()
	return nil
}

// Stop closes the queue, delivers what is still in it and waits for the loop to exit.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if d.state != stateRunning {
		d.mu.Unlock()
		return ErrDispatcherNotRunning
	}
	d.state = stateStopped
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	return nil
}

func (d *InMemoryEventDispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *InMemoryEventDispatcher) deliver(event DomainEvent) {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.GetEventType()]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		goroutine.SafeGo(d.logger, "event:"+event.GetEventType(), func() {
			if err := h.Handle(event); err != nil {
				d.logger.Errorw("event handler failed",
					"event_type", event.GetEventType(),
					"aggregate_id", event.GetAggregateID(),
					"error", err,
				)
			}
		})
	}
}
