package domain

import "time"

// Event is the base interface for order domain events. Events are recorded by
// the aggregate during a transition and dispatched by the application service
// after the persistence commit.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderConfirmed is raised when an order moves to CONFIRMADO.
type OrderConfirmed struct {
	BaseEvent
	OrderID string
	Actor   string
}

func (e OrderConfirmed) EventName() string {
	return "orders.order.confirmed"
}

// OrderShipped is raised when an order moves to ENVIADO.
type OrderShipped struct {
	BaseEvent
	OrderID string
	Actor   string
}

func (e OrderShipped) EventName() string {
	return "orders.order.shipped"
}

// OrderCancelled is raised when an order moves to CANCELADO.
type OrderCancelled struct {
	BaseEvent
	OrderID string
	Actor   string
}

func (e OrderCancelled) EventName() string {
	return "orders.order.cancelled"
}

// AggregateWithEvents is implemented by aggregates that track domain events.
type AggregateWithEvents interface {
	Events() []Event
	ClearEvents()
}
