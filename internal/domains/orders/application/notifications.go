package application

import (
	"fmt"
	"strings"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

// Notification kinds stored alongside each payload. Wire values keep the
// Spanish vocabulary used by the notification store.
const (
	KindNewOrder       = "pedido_nuevo"
	KindOrderConfirmed = "pedido_confirmado"
	KindOrderShipped   = "pedido_enviado"
	KindOrderCancelled = "pedido_cancelado"
)

// NewOrderSellerNotification tells a seller a new order includes their items.
func NewOrderSellerNotification(order *domain.Order, sellerID string) ports.Notification {
	return ports.Notification{
		RecipientID: sellerID,
		Title:       "Nuevo pedido recibido",
		Message: fmt.Sprintf("Recibiste el pedido %s con tus artículos: %s.",
			order.ID, itemSummary(order.ItemsBySeller(sellerID))),
		Kind: KindNewOrder,
	}
}

// OrderConfirmedBuyerNotification tells the buyer their order was confirmed.
func OrderConfirmedBuyerNotification(order *domain.Order) ports.Notification {
	return ports.Notification{
		RecipientID: order.BuyerID,
		Title:       "Pedido confirmado",
		Message: fmt.Sprintf("Tu pedido %s por %s fue confirmado.",
			order.ID, formatAmount(order.Total(), order.Currency)),
		Kind: KindOrderConfirmed,
	}
}

// OrderConfirmedSellerNotification tells a seller the order moved to confirmed.
func OrderConfirmedSellerNotification(order *domain.Order, sellerID string) ports.Notification {
	return ports.Notification{
		RecipientID: sellerID,
		Title:       "Pedido confirmado",
		Message: fmt.Sprintf("El pedido %s fue confirmado. Preparar: %s.",
			order.ID, itemSummary(order.ItemsBySeller(sellerID))),
		Kind: KindOrderConfirmed,
	}
}

// OrderShippedNotification tells the buyer their order is on its way.
func OrderShippedNotification(order *domain.Order) ports.Notification {
	addr := order.DeliveryAddress
	return ports.Notification{
		RecipientID: order.BuyerID,
		Title:       "Pedido enviado",
		Message: fmt.Sprintf("Tu pedido %s fue enviado a %s %d, %s.",
			order.ID, addr.Street(), addr.Number(), addr.City()),
		Kind: KindOrderShipped,
	}
}

// OrderCancelledSellerNotification tells a seller the order was cancelled,
// listing only that seller's line items.
func OrderCancelledSellerNotification(order *domain.Order, sellerID string) ports.Notification {
	return ports.Notification{
		RecipientID: sellerID,
		Title:       "Pedido cancelado",
		Message: fmt.Sprintf("El pedido %s fue cancelado. Artículos devueltos a stock: %s.",
			order.ID, itemSummary(order.ItemsBySeller(sellerID))),
		Kind: KindOrderCancelled,
	}
}

func itemSummary(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName()
		if name == "" {
			name = item.ProductID()
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity(), name))
	}
	return strings.Join(parts, ", ")
}

func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}
