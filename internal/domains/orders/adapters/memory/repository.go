package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter, used as the dev
// fallback and in tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	return list, nil
}

// AppendStatusChange updates the status and appends the history entry under a
// single lock, mirroring the single-operation guarantee of the durable adapter.
func (r *Repository) AppendStatusChange(_ context.Context, orderID string, change domain.StatusChange) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	order.History = append(order.History, change)
	order.Status = change.Status
	return cloneOrder(order), nil
}

// cloneOrder makes a deep enough copy that callers cannot mutate stored state:
// line items and addresses are immutable values, so copying the slices and the
// struct suffices. Recorded domain events are deliberately not shared.
func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.LineItem{}, order.Items...)
	clone.History = append([]domain.StatusChange{}, order.History...)
	clone.ClearEvents()
	return &clone
}
