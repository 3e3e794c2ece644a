package ports

import "context"

// Notification is the payload handed to the external notification store.
type Notification struct {
	RecipientID string
	Title       string
	Message     string
	Kind        string
}

// Notifier creates notifications in the external store. Dispatch is
// best-effort relative to order state transitions: callers log failures and
// never roll back a committed transition because of one.
type Notifier interface {
	Create(ctx context.Context, notification Notification) error
}
