// Package http exposes the order lifecycle over gin.
package http

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/feriahub/marketplace-api/internal/domains/orders/adapters/http/mapper"
	"github.com/feriahub/marketplace-api/internal/domains/orders/application"
	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
	sharederrors "github.com/feriahub/marketplace-api/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders service and the durable
// placement workflow.
type OrdersAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *sharederrors.Responder
}

// NewOrdersAPI creates the transport facade. workflows may be nil, in which
// case creation runs synchronously through the service.
func NewOrdersAPI(service ports.Service, workflows ports.WorkflowOrchestrator, responder *sharederrors.Responder) *OrdersAPI {
	if responder == nil {
		responder = sharederrors.NewResponder("", OrderErrorMapper)
	}
	return &OrdersAPI{service: service, workflows: workflows, responder: responder}
}

// Post /pedidos
// Place a new order for the authenticated buyer.
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	var payload mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Write(c, sharederrors.Validation("malformed request body: "+err.Error(), nil))
		return
	}
	order, err := api.placeOrder(c.Request.Context(), mapper.ToCreateInput(actor.ID, payload))
	if err != nil {
		api.responder.WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, mapper.CreateOrderEnvelope{
		Message: "pedido creado",
		Pedido:  mapper.FromOrder(order),
	})
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Get /pedidos
// List all orders.
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.responder.WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, mapper.FromOrderList(orders))
}

// Get /pedidos/:pedidoId
// Fetch one order by id.
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrderByID(c.Request.Context(), c.Param("pedidoId"))
	if err != nil {
		api.responder.WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, mapper.FromOrder(order))
}

// Patch /pedidos/:pedidoId/confirmar
// Seller confirms a pending order.
func (api *OrdersAPI) ConfirmOrder(c *gin.Context) {
	api.transition(c, api.service.ConfirmOrder)
}

// Patch /pedidos/:pedidoId/cancelar
// Buyer cancels the order; stock is returned to the catalog.
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	api.transition(c, api.service.CancelOrder)
}

// Patch /pedidos/:pedidoId/enviar
// Seller marks a confirmed order as shipped.
func (api *OrdersAPI) ShipOrder(c *gin.Context) {
	api.transition(c, api.service.MarkShipped)
}

func (api *OrdersAPI) transition(c *gin.Context, op func(context.Context, string, ports.Actor) (*domain.Order, error)) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	order, err := op(c.Request.Context(), c.Param("pedidoId"), actor)
	if err != nil {
		api.responder.WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, mapper.FromOrder(order))
}

func (api *OrdersAPI) requireActor(c *gin.Context) (ports.Actor, bool) {
	actor, ok := ports.ActorFromContext(c.Request.Context())
	if !ok {
		api.responder.Write(c, sharederrors.Unauthenticated("missing caller identity"))
		return ports.Actor{}, false
	}
	return actor, true
}

// OrderErrorMapper translates orders errors into problem documents.
func OrderErrorMapper(err error) (sharederrors.Problem, bool) {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return sharederrors.Validation(err.Error(), map[string]any{fieldErr.Field: fieldErr.Message}), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.Validation(err.Error(), nil), true
	case errors.Is(err, application.ErrInvalidOrderID):
		return sharederrors.InvalidID(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NotFound("order does not exist"), true
	case errors.Is(err, ports.ErrProductNotFound):
		return sharederrors.Validation(err.Error(), nil), true
	case errors.Is(err, ports.ErrInsufficientStock):
		return sharederrors.InsufficientStock(err.Error()), true
	case errors.Is(err, application.ErrUnauthorized):
		return sharederrors.Forbidden(err.Error()), true
	case errors.Is(err, domain.ErrAlreadyShipped),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrInvalidTransition):
		return sharederrors.StateConflict(err.Error()), true
	default:
		return sharederrors.Problem{}, false
	}
}
