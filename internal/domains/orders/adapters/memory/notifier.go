package memory

import (
	"context"
	"sync"

	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier records notifications in memory, used as the dev fallback and in
// tests to assert on dispatched payloads.
type Notifier struct {
	mu            sync.RWMutex
	notifications []ports.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Create(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

// Notifications returns a copy of everything dispatched so far.
func (n *Notifier) Notifications() []ports.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]ports.Notification{}, n.notifications...)
}

// ForRecipient filters dispatched notifications by recipient.
func (n *Notifier) ForRecipient(recipientID string) []ports.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var result []ports.Notification
	for _, notification := range n.notifications {
		if notification.RecipientID == recipientID {
			result = append(result, notification)
		}
	}
	return result
}
