// Package events defines the domain event contract and an in-process dispatcher.
package events

import (
	"time"
)

// DomainEvent is something that happened to an aggregate.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps an event of the given type for aggregateID.
func NewBaseEvent(eventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{AggregateID: aggregateID, EventType: eventType, OccurredAt: at}
}

func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler reacts to one or more event types.
type EventHandler interface {
	Handle(event DomainEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(event DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error { return f(event) }

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

// EventDispatcher combines publishing, subscription and lifecycle.
type EventDispatcher interface {
	EventPublisher
	Subscribe(eventType string, handler EventHandler) error
	Start() error
	Stop() error
}
