package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

func notificationFixtureOrder(t *testing.T) *domain.Order {
	t.Helper()
	address, err := domain.NewAddress(domain.AddressParams{
		Street:   "Av. Santa Fe",
		Number:   2450,
		City:     "Buenos Aires",
		Province: "CABA",
		Country:  "Argentina",
	})
	require.NoError(t, err)

	mate, err := domain.NewLineItem("prod-1", "seller-1", "Mate Imperial", 2, 1850_00)
	require.NoError(t, err)
	yerba, err := domain.NewLineItem("prod-2", "seller-2", "Yerba Organica", 1, 420_00)
	require.NoError(t, err)

	order, err := domain.NewOrder("buyer-1", []domain.LineItem{mate, yerba}, "ARS", address)
	require.NoError(t, err)
	order.ID = "ped-123"
	return order
}

func TestNewOrderSellerNotification_ListsOnlyOwnItems(t *testing.T) {
	order := notificationFixtureOrder(t)

	notification := NewOrderSellerNotification(order, "seller-1")
	require.Equal(t, "seller-1", notification.RecipientID)
	require.Equal(t, KindNewOrder, notification.Kind)
	require.Contains(t, notification.Message, "ped-123")
	require.Contains(t, notification.Message, "2x Mate Imperial")
	require.NotContains(t, notification.Message, "Yerba Organica")
}

func TestOrderConfirmedBuyerNotification_FormatsTotal(t *testing.T) {
	order := notificationFixtureOrder(t)

	notification := OrderConfirmedBuyerNotification(order)
	require.Equal(t, "buyer-1", notification.RecipientID)
	require.Equal(t, KindOrderConfirmed, notification.Kind)
	require.Contains(t, notification.Message, "4120.00 ARS")
}

func TestOrderShippedNotification_IncludesAddress(t *testing.T) {
	order := notificationFixtureOrder(t)

	notification := OrderShippedNotification(order)
	require.Equal(t, "buyer-1", notification.RecipientID)
	require.Equal(t, KindOrderShipped, notification.Kind)
	require.Contains(t, notification.Message, "Av. Santa Fe 2450")
	require.Contains(t, notification.Message, "Buenos Aires")
}

func TestOrderCancelledSellerNotification(t *testing.T) {
	order := notificationFixtureOrder(t)

	notification := OrderCancelledSellerNotification(order, "seller-2")
	require.Equal(t, "seller-2", notification.RecipientID)
	require.Equal(t, KindOrderCancelled, notification.Kind)
	require.Contains(t, notification.Message, "1x Yerba Organica")
	require.NotContains(t, notification.Message, "Mate Imperial")
}
