// Package notifier adapts the notification service client to the orders context.
package notifier

import (
	"context"

	notificationsclient "github.com/feriahub/marketplace-api/internal/clients/http/notifications"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Notifier = (*Adapter)(nil)

// Adapter forwards order notifications to the notification service.
type Adapter struct {
	client *notificationsclient.Client
}

func NewAdapter(client *notificationsclient.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Create(ctx context.Context, notification ports.Notification) error {
	return a.client.Create(ctx, notificationsclient.CreateRequest{
		DestinatarioID: notification.RecipientID,
		Titulo:         notification.Title,
		Mensaje:        notification.Message,
		Tipo:           notification.Kind,
	})
}
