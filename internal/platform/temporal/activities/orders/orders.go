package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName resolves products, reserves stock and persists the
// order through the application service.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups the Temporal activities of the orders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the orders service into the activity bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the full order placement use case and returns the persisted
// order's id. Only the id crosses the workflow boundary; callers reload the
// aggregate through the service.
func (a *Activities) PlaceOrder(ctx context.Context, input ports.CreateOrderInput) (string, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "buyerId", input.BuyerID)
		return "", errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "buyerId", input.BuyerID)
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "buyerId", input.BuyerID, "error", err)
		return "", err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order.ID, nil
}
