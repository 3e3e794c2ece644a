package domain

import "time"

// StatusChange is one immutable entry in an order's status history. Entries are
// created exclusively by Order.Transition and never mutated afterwards; the
// owning order is identified by its id in persistence, there is no live
// back-pointer.
type StatusChange struct {
	At     time.Time   `json:"fecha"`
	Status OrderStatus `json:"estado"`
	Actor  string      `json:"usuario"`
	Reason string      `json:"motivo"`
}
