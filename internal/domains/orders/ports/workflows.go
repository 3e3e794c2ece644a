package ports

import (
	"context"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator starts the durable order placement flow. Implementations
// may run inline (dev/tests) or on a Temporal cluster.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}
