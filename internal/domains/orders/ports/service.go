package ports

import (
	"context"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

// CreateOrderItemInput is one requested product line; the price and seller are
// resolved from the catalog at creation time, never taken from the caller.
type CreateOrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	BuyerID         string
	Items           []CreateOrderItemInput
	Currency        string
	DeliveryAddress domain.AddressParams
}

// Service exposes the order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, id string, actor Actor) (*domain.Order, error)
	CancelOrder(ctx context.Context, id string, actor Actor) (*domain.Order, error)
	MarkShipped(ctx context.Context, id string, actor Actor) (*domain.Order, error)
}
