package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustLineItem(t *testing.T, productID, sellerID string, quantity int, priceCents int64) LineItem {
	t.Helper()
	item, err := NewLineItem(productID, sellerID, "Producto "+productID, quantity, priceCents)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	address, err := NewAddress(validAddressParams())
	require.NoError(t, err)
	order, err := NewOrder("buyer-1", []LineItem{
		mustLineItem(t, "prod-1", "seller-1", 2, 100_00),
		mustLineItem(t, "prod-2", "seller-2", 1, 50_00),
	}, "ARS", address)
	require.NoError(t, err)
	return order
}

func TestNewLineItem_Validation(t *testing.T) {
	_, err := NewLineItem("", "seller-1", "x", 1, 100)
	require.ErrorIs(t, err, ErrMissingProductID)

	_, err = NewLineItem("prod-1", " ", "x", 1, 100)
	require.ErrorIs(t, err, ErrMissingSellerID)

	_, err = NewLineItem("prod-1", "seller-1", "x", 0, 100)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem("prod-1", "seller-1", "x", 1, -1)
	require.ErrorIs(t, err, ErrInvalidUnitPrice)
}

func TestLineItem_Subtotal(t *testing.T) {
	item := mustLineItem(t, "prod-1", "seller-1", 3, 75_50)
	require.Equal(t, int64(226_50), item.Subtotal())
}

func TestNewOrder_StartsPendingWithEmptyHistory(t *testing.T) {
	order := newTestOrder(t)
	require.Equal(t, StatusPending, order.Status)
	require.Empty(t, order.History)
	require.Empty(t, order.ID)
	require.False(t, order.CreatedAt.IsZero())
}

func TestNewOrder_Validation(t *testing.T) {
	address, err := NewAddress(validAddressParams())
	require.NoError(t, err)
	item := mustLineItem(t, "prod-1", "seller-1", 1, 100)

	_, err = NewOrder("", []LineItem{item}, "ARS", address)
	require.ErrorIs(t, err, ErrMissingBuyer)

	_, err = NewOrder("buyer-1", nil, "ARS", address)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("buyer-1", []LineItem{item}, " ", address)
	require.ErrorIs(t, err, ErrMissingCurrency)
}

func TestOrder_Total(t *testing.T) {
	order := newTestOrder(t)
	require.Equal(t, int64(250_00), order.Total())
}

func TestTransition_LegalPath(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.Transition(StatusConfirmed, "seller-1", "confirmed by seller"))
	require.Equal(t, StatusConfirmed, order.Status)
	require.Len(t, order.History, 1)
	require.Equal(t, StatusConfirmed, order.History[0].Status)
	require.Equal(t, "seller-1", order.History[0].Actor)

	require.NoError(t, order.Transition(StatusShipped, "seller-1", "marked shipped by seller"))
	require.Equal(t, StatusShipped, order.Status)
	require.Len(t, order.History, 2)
}

func TestTransition_PendingToShippedRejected(t *testing.T) {
	order := newTestOrder(t)
	err := order.Transition(StatusShipped, "seller-1", "skip confirmation")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, StatusPending, order.Status)
	require.Empty(t, order.History)
}

func TestTransition_TerminalStates(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.Transition(StatusCancelled, "buyer-1", "changed my mind"))
	require.ErrorIs(t, order.Transition(StatusConfirmed, "seller-1", "too late"), ErrAlreadyCancelled)

	shipped := newTestOrder(t)
	require.NoError(t, shipped.Transition(StatusConfirmed, "seller-1", ""))
	require.NoError(t, shipped.Transition(StatusShipped, "seller-1", ""))
	require.ErrorIs(t, shipped.Transition(StatusCancelled, "buyer-1", "cancel after ship"), ErrAlreadyShipped)
	require.Len(t, shipped.History, 2)
}

func TestTransition_UnknownStatus(t *testing.T) {
	order := newTestOrder(t)
	err := order.Transition(OrderStatus("DEVUELTO"), "buyer-1", "")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransition_RecordsEvents(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.Transition(StatusConfirmed, "seller-1", ""))

	events := order.Events()
	require.Len(t, events, 1)
	confirmed, ok := events[0].(OrderConfirmed)
	require.True(t, ok)
	require.Equal(t, "orders.order.confirmed", confirmed.EventName())
	require.Equal(t, "seller-1", confirmed.Actor)

	order.ClearEvents()
	require.Empty(t, order.Events())
}

type stubStock struct {
	levels map[string]int
	err    error
}

func (s stubStock) AvailableStock(_ context.Context, productID string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.levels[productID], nil
}

func TestValidateStock(t *testing.T) {
	order := newTestOrder(t)

	enough, err := order.ValidateStock(context.Background(), stubStock{levels: map[string]int{"prod-1": 2, "prod-2": 1}})
	require.NoError(t, err)
	require.True(t, enough)

	enough, err = order.ValidateStock(context.Background(), stubStock{levels: map[string]int{"prod-1": 1, "prod-2": 1}})
	require.NoError(t, err)
	require.False(t, enough)

	_, err = order.ValidateStock(context.Background(), stubStock{err: errors.New("catalog down")})
	require.Error(t, err)
}

func TestSellers_DistinctFirstAppearance(t *testing.T) {
	address, err := NewAddress(validAddressParams())
	require.NoError(t, err)
	order, err := NewOrder("buyer-1", []LineItem{
		mustLineItem(t, "prod-1", "seller-2", 1, 100),
		mustLineItem(t, "prod-2", "seller-1", 1, 100),
		mustLineItem(t, "prod-3", "seller-2", 1, 100),
	}, "ARS", address)
	require.NoError(t, err)

	require.Equal(t, []string{"seller-2", "seller-1"}, order.Sellers())
	require.True(t, order.HasSeller("seller-1"))
	require.False(t, order.HasSeller("seller-9"))
	require.Len(t, order.ItemsBySeller("seller-2"), 2)
}
