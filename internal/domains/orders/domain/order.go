package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// OrderStatus captures the lifecycle of an order. Wire values keep the
// canonical Spanish vocabulary.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDIENTE"
	StatusConfirmed OrderStatus = "CONFIRMADO"
	StatusShipped   OrderStatus = "ENVIADO"
	StatusCancelled OrderStatus = "CANCELADO"
)

// Valid reports whether the status belongs to the canonical vocabulary.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are accepted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

var (
	ErrMissingBuyer      = errors.New("order buyer id is required")
	ErrMissingCurrency   = errors.New("order currency is required")
	ErrNoItems           = errors.New("order requires at least one line item")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrAlreadyShipped    = errors.New("order already shipped")
	ErrAlreadyCancelled  = errors.New("order already cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// legalTransitions is the order state machine. Terminal states have no entry.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
}

// ProductStock reports available stock for a product. Satisfied by the catalog
// port; defined here so the aggregate can pre-check stock without depending on
// the ports package.
type ProductStock interface {
	AvailableStock(ctx context.Context, productID string) (int, error)
}

// Order is the aggregate root of the orders bounded context. ID is empty until
// the repository assigns one on first save. History is append-only and grows by
// exactly one entry per accepted transition.
type Order struct {
	ID              string
	BuyerID         string
	Items           []LineItem
	Currency        string
	DeliveryAddress Address
	Status          OrderStatus
	CreatedAt       time.Time
	History         []StatusChange

	events []Event
}

// NewOrder builds an in-memory order in PENDIENTE with an empty history.
func NewOrder(buyerID string, items []LineItem, currency string, address Address) (*Order, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, ErrMissingBuyer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if strings.TrimSpace(currency) == "" {
		return nil, ErrMissingCurrency
	}
	return &Order{
		BuyerID:         buyerID,
		Items:           append([]LineItem{}, items...),
		Currency:        currency,
		DeliveryAddress: address,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// Total sums the subtotals of every line item, in cents. Pure.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// Transition validates and applies a status change. On success it appends the
// history entry, sets the new status, and records the matching domain event.
// On failure the order is left untouched.
func (o *Order) Transition(to OrderStatus, actor, reason string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	switch o.Status {
	case StatusShipped:
		return ErrAlreadyShipped
	case StatusCancelled:
		return ErrAlreadyCancelled
	}
	if !transitionAllowed(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	now := time.Now().UTC()
	o.History = append(o.History, StatusChange{At: now, Status: to, Actor: actor, Reason: reason})
	o.Status = to

	switch to {
	case StatusConfirmed:
		o.recordEvent(OrderConfirmed{BaseEvent: BaseEvent{Timestamp: now}, OrderID: o.ID, Actor: actor})
	case StatusShipped:
		o.recordEvent(OrderShipped{BaseEvent: BaseEvent{Timestamp: now}, OrderID: o.ID, Actor: actor})
	case StatusCancelled:
		o.recordEvent(OrderCancelled{BaseEvent: BaseEvent{Timestamp: now}, OrderID: o.ID, Actor: actor})
	}
	return nil
}

func transitionAllowed(from, to OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateStock is the advisory pre-check run before an order is persisted:
// false when any item's requested quantity exceeds the available stock. It is
// not a reservation; the catalog's conditional decrement remains the authority.
func (o *Order) ValidateStock(ctx context.Context, stocks ProductStock) (bool, error) {
	for _, item := range o.Items {
		available, err := stocks.AvailableStock(ctx, item.ProductID())
		if err != nil {
			return false, fmt.Errorf("check stock for product %s: %w", item.ProductID(), err)
		}
		if available < item.Quantity() {
			return false, nil
		}
	}
	return true, nil
}

// Sellers returns the distinct seller ids referenced by the line items, in
// first-appearance order.
func (o *Order) Sellers() []string {
	seen := make(map[string]struct{}, len(o.Items))
	sellers := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.SellerID()]; ok {
			continue
		}
		seen[item.SellerID()] = struct{}{}
		sellers = append(sellers, item.SellerID())
	}
	return sellers
}

// HasSeller reports whether the given seller owns at least one line item.
func (o *Order) HasSeller(sellerID string) bool {
	for _, item := range o.Items {
		if item.SellerID() == sellerID {
			return true
		}
	}
	return false
}

// ItemsBySeller returns the line items belonging to one seller, preserving
// insertion order.
func (o *Order) ItemsBySeller(sellerID string) []LineItem {
	var items []LineItem
	for _, item := range o.Items {
		if item.SellerID() == sellerID {
			items = append(items, item)
		}
	}
	return items
}

// Events returns the domain events recorded since the last ClearEvents.
func (o *Order) Events() []Event {
	return append([]Event{}, o.events...)
}

// ClearEvents drops the recorded events, typically after dispatch.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) recordEvent(e Event) {
	o.events = append(o.events, e)
}

var _ AggregateWithEvents = (*Order)(nil)
