package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

const tracerName = "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/observability/service"

var _ ports.Service = (*Service)(nil)

// Service decorates the orders service with tracing, logging and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.buyer_id", input.BuyerID),
			attribute.Int("order.item_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("buyerId", input.BuyerID), slog.Int("items", len(input.Items)))
	order, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("buyerId", input.BuyerID))
	}
	s.metrics.recordCreated(ctx, order.Currency)
	s.logInfo(ctx, "order created", slog.String("orderId", order.ID), slog.Int64("totalCents", order.Total()))
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("orderId", id))
	}
	return order, nil
}

func (s *Service) ConfirmOrder(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmOrder",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("actor.id", actor.ID)))
	defer span.End()

	s.logInfo(ctx, "confirming order", slog.String("orderId", id), slog.String("actorId", actor.ID))
	order, err := s.inner.ConfirmOrder(ctx, id, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm order", slog.String("orderId", id))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order confirmed", slog.String("orderId", order.ID))
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("actor.id", actor.ID)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("orderId", id), slog.String("actorId", actor.ID))
	order, err := s.inner.CancelOrder(ctx, id, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("orderId", id))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order cancelled", slog.String("orderId", order.ID))
	return order, nil
}

func (s *Service) MarkShipped(ctx context.Context, id string, actor ports.Actor) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.MarkShipped",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("actor.id", actor.ID)))
	defer span.End()

	s.logInfo(ctx, "marking order shipped", slog.String("orderId", id), slog.String("actorId", actor.ID))
	order, err := s.inner.MarkShipped(ctx, id, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order shipped", slog.String("orderId", id))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order shipped", slog.String("orderId", order.ID))
	return order, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	transitions   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created",
		metric.WithDescription("Number of orders created"))
	transitions, _ := m.Int64Counter("orders.service.transitions",
		metric.WithDescription("Number of order status transitions"))
	return serviceMetrics{ordersCreated: created, transitions: transitions}
}

func (m serviceMetrics) recordCreated(ctx context.Context, currency string) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.currency", currency)))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.OrderStatus) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}
