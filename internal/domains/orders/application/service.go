package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle use cases. All collaborators are
// injected; the service holds no request state.
type Service struct {
	repo     ports.Repository
	catalog  ports.Catalog
	notifier ports.Notifier
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger overrides the logger used for best-effort side effects.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the order service with its ports.
func NewService(repo ports.Repository, catalog ports.Catalog, notifier ports.Notifier, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder resolves the requested products against the catalog, snapshots
// their price-at-purchase, reserves stock, persists the order, and notifies the
// sellers involved. Nothing is persisted when the stock gate fails.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	address, err := domain.NewAddress(input.DeliveryAddress)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(input.BuyerID, items, input.Currency, address)
	if err != nil {
		return nil, mapError(err)
	}

	// Advisory pre-check: fail fast before touching stock.
	enough, err := order.ValidateStock(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	if !enough {
		return nil, ports.ErrInsufficientStock
	}

	if err := s.reserveStock(ctx, order); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		s.releaseStock(ctx, order)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	for _, sellerID := range saved.Sellers() {
		s.notify(ctx, NewOrderSellerNotification(saved, sellerID))
	}
	return saved, nil
}

// ListOrders is a read-through to the repository.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// GetOrderByID loads one order.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.load(ctx, id)
}

// ConfirmOrder moves a pending order to CONFIRMADO. Only a seller with items in
// the order may confirm it.
func (s *Service) ConfirmOrder(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.HasSeller(actor.ID) {
		return nil, fmt.Errorf("%w: only a seller of the order may confirm it", ErrUnauthorized)
	}
	if err := order.Transition(domain.StatusConfirmed, actor.ID, "confirmed by seller"); err != nil {
		return nil, err
	}
	persisted, err := s.persistTransition(ctx, order)
	if err != nil {
		return nil, err
	}
	s.dispatchEvents(ctx, order)
	return persisted, nil
}

// CancelOrder cancels an order on behalf of its buyer and restocks every line
// item. Restocking is part of the cancellation contract.
func (s *Service) CancelOrder(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.BuyerID {
		return nil, fmt.Errorf("%w: only the buyer may cancel the order", ErrUnauthorized)
	}
	switch order.Status {
	case domain.StatusShipped:
		return nil, fmt.Errorf("%w, cannot cancel", domain.ErrAlreadyShipped)
	case domain.StatusCancelled:
		return nil, domain.ErrAlreadyCancelled
	}
	if err := order.Transition(domain.StatusCancelled, actor.ID, "buyer-initiated cancellation"); err != nil {
		return nil, err
	}
	persisted, err := s.persistTransition(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.restock(ctx, order); err != nil {
		return nil, err
	}
	s.dispatchEvents(ctx, order)
	return persisted, nil
}

// MarkShipped moves a confirmed order to ENVIADO and records the sale on each
// product's sales counter.
func (s *Service) MarkShipped(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.HasSeller(actor.ID) {
		return nil, fmt.Errorf("%w: only a seller of the order may mark it shipped", ErrUnauthorized)
	}
	if err := order.Transition(domain.StatusShipped, actor.ID, "marked shipped by seller"); err != nil {
		return nil, err
	}
	persisted, err := s.persistTransition(ctx, order)
	if err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if err := s.catalog.IncrementSalesCount(ctx, item.ProductID(), item.Quantity()); err != nil {
			s.logger.ErrorContext(ctx, "failed to record sale",
				slog.String("order.id", order.ID),
				slog.String("product.id", item.ProductID()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("record sale for product %s: %w", item.ProductID(), err)
		}
	}
	s.dispatchEvents(ctx, order)
	return persisted, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Order, error) {
	if uuid.Validate(id) != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderID, id)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) resolveItems(ctx context.Context, requested []ports.CreateOrderItemInput) ([]domain.LineItem, error) {
	if len(requested) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}
	items := make([]domain.LineItem, 0, len(requested))
	for _, req := range requested {
		product, err := s.catalog.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", ports.ErrProductNotFound, req.ProductID)
			}
			return nil, fmt.Errorf("resolve product %s: %w", req.ProductID, err)
		}
		item, err := domain.NewLineItem(product.ID, product.SellerID, product.Name, req.Quantity, product.PriceCents)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	return items, nil
}

// reserveStock runs the authoritative conditional decrement per item,
// compensating already-decremented items when one runs out mid-way.
func (s *Service) reserveStock(ctx context.Context, order *domain.Order) error {
	decremented := make([]domain.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		if err := s.catalog.DecrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			s.compensateStock(ctx, decremented)
			if errors.Is(err, ports.ErrInsufficientStock) {
				return ports.ErrInsufficientStock
			}
			return fmt.Errorf("reserve stock for product %s: %w", item.ProductID(), err)
		}
		decremented = append(decremented, item)
	}
	return nil
}

func (s *Service) releaseStock(ctx context.Context, order *domain.Order) {
	s.compensateStock(ctx, order.Items)
}

func (s *Service) compensateStock(ctx context.Context, items []domain.LineItem) {
	for _, item := range items {
		if err := s.catalog.IncrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			s.logger.ErrorContext(ctx, "failed to release reserved stock",
				slog.String("product.id", item.ProductID()),
				slog.Int("quantity", item.Quantity()),
				slog.String("error", err.Error()))
		}
	}
}

func (s *Service) restock(ctx context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		if err := s.catalog.IncrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			s.logger.ErrorContext(ctx, "failed to restock cancelled item",
				slog.String("order.id", order.ID),
				slog.String("product.id", item.ProductID()),
				slog.String("error", err.Error()))
			return fmt.Errorf("restock product %s: %w", item.ProductID(), err)
		}
	}
	return nil
}

// persistTransition records the latest history entry and the new status as one
// atomic repository operation.
func (s *Service) persistTransition(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	change := order.History[len(order.History)-1]
	persisted, err := s.repo.AppendStatusChange(ctx, order.ID, change)
	if err != nil {
		return nil, fmt.Errorf("persist status change: %w", err)
	}
	return persisted, nil
}

// dispatchEvents turns the aggregate's recorded events into notifications.
// Dispatch is best-effort: failures are logged and never surfaced.
func (s *Service) dispatchEvents(ctx context.Context, order *domain.Order) {
	for _, event := range order.Events() {
		switch event.(type) {
		case domain.OrderConfirmed:
			s.notify(ctx, OrderConfirmedBuyerNotification(order))
			for _, sellerID := range order.Sellers() {
				s.notify(ctx, OrderConfirmedSellerNotification(order, sellerID))
			}
		case domain.OrderShipped:
			s.notify(ctx, OrderShippedNotification(order))
		case domain.OrderCancelled:
			for _, sellerID := range order.Sellers() {
				s.notify(ctx, OrderCancelledSellerNotification(order, sellerID))
			}
		}
	}
	order.ClearEvents()
}

func (s *Service) notify(ctx context.Context, notification ports.Notification) {
	if err := s.notifier.Create(ctx, notification); err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch notification",
			slog.String("recipient.id", notification.RecipientID),
			slog.String("kind", notification.Kind),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
