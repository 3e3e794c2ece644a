package ports

import (
	"context"
	"errors"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates. Save assigns an id when the order has
// none yet. AppendStatusChange must apply the status update and the history
// append as a single atomic persistence operation, so a concurrent reader never
// observes one without the other.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	AppendStatusChange(ctx context.Context, orderID string, change domain.StatusChange) (*domain.Order, error)
}
