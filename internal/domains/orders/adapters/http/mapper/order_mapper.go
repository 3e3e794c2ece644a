// Package mapper translates between the public wire payloads and the orders
// domain. The wire vocabulary is Spanish to match the marketplace's public API.
package mapper

import (
	"time"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

// AddressPayload is the wire shape of a delivery address.
type AddressPayload struct {
	Calle        string   `json:"calle"`
	Altura       int      `json:"altura"`
	Piso         string   `json:"piso,omitempty"`
	Departamento string   `json:"departamento,omitempty"`
	CodPostal    string   `json:"codPostal,omitempty"`
	Ciudad       string   `json:"ciudad"`
	Provincia    string   `json:"provincia"`
	Pais         string   `json:"pais"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
}

// CreateOrderItemPayload is one requested product line. Quantity only; prices
// and sellers come from the catalog.
type CreateOrderItemPayload struct {
	ProductoID string `json:"productoId"`
	Cantidad   int    `json:"cantidad"`
}

// CreateOrderRequest is the body of POST /pedidos.
type CreateOrderRequest struct {
	Items            []CreateOrderItemPayload `json:"items"`
	Moneda           string                   `json:"moneda"`
	DireccionEntrega AddressPayload           `json:"direccionEntrega"`
}

// LineItemResponse is the wire shape of a priced order line.
type LineItemResponse struct {
	ProductoID     string `json:"productoId"`
	VendedorID     string `json:"vendedorId"`
	NombreProducto string `json:"nombreProducto"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario int64  `json:"precioUnitario"`
	Subtotal       int64  `json:"subtotal"`
}

// StatusChangeResponse is one entry of the order's status history.
type StatusChangeResponse struct {
	Fecha   time.Time `json:"fecha"`
	Estado  string    `json:"estado"`
	Usuario string    `json:"usuario"`
	Motivo  string    `json:"motivo"`
}

// OrderResponse is the wire shape of a full order aggregate.
type OrderResponse struct {
	ID               string                 `json:"id"`
	CompradorID      string                 `json:"compradorId"`
	Items            []LineItemResponse     `json:"items"`
	Moneda           string                 `json:"moneda"`
	DireccionEntrega AddressPayload         `json:"direccionEntrega"`
	Estado           string                 `json:"estado"`
	FechaCreacion    time.Time              `json:"fechaCreacion"`
	Total            int64                  `json:"total"`
	HistorialEstados []StatusChangeResponse `json:"historialEstados"`
}

// CreateOrderEnvelope wraps the creation response with a confirmation message.
type CreateOrderEnvelope struct {
	Message string        `json:"message"`
	Pedido  OrderResponse `json:"pedido"`
}

// ToCreateInput converts the request body into the service input for the
// authenticated buyer.
func ToCreateInput(buyerID string, req CreateOrderRequest) ports.CreateOrderInput {
	items := make([]ports.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.CreateOrderItemInput{
			ProductID: item.ProductoID,
			Quantity:  item.Cantidad,
		})
	}
	return ports.CreateOrderInput{
		BuyerID:         buyerID,
		Items:           items,
		Currency:        req.Moneda,
		DeliveryAddress: toAddressParams(req.DireccionEntrega),
	}
}

// FromOrder converts an order aggregate into its wire shape.
func FromOrder(order *domain.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemResponse{
			ProductoID:     item.ProductID(),
			VendedorID:     item.SellerID(),
			NombreProducto: item.ProductName(),
			Cantidad:       item.Quantity(),
			PrecioUnitario: item.UnitPriceCents(),
			Subtotal:       item.Subtotal(),
		})
	}
	history := make([]StatusChangeResponse, 0, len(order.History))
	for _, change := range order.History {
		history = append(history, StatusChangeResponse{
			Fecha:   change.At,
			Estado:  string(change.Status),
			Usuario: change.Actor,
			Motivo:  change.Reason,
		})
	}
	return OrderResponse{
		ID:               order.ID,
		CompradorID:      order.BuyerID,
		Items:            items,
		Moneda:           order.Currency,
		DireccionEntrega: fromAddress(order.DeliveryAddress),
		Estado:           string(order.Status),
		FechaCreacion:    order.CreatedAt,
		Total:            order.Total(),
		HistorialEstados: history,
	}
}

// FromOrderList converts a slice of orders.
func FromOrderList(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromOrder(order))
	}
	return result
}

func toAddressParams(payload AddressPayload) domain.AddressParams {
	return domain.AddressParams{
		Street:     payload.Calle,
		Number:     payload.Altura,
		Floor:      payload.Piso,
		Unit:       payload.Departamento,
		PostalCode: payload.CodPostal,
		City:       payload.Ciudad,
		Province:   payload.Provincia,
		Country:    payload.Pais,
		Latitude:   payload.Lat,
		Longitude:  payload.Lon,
	}
}

func fromAddress(address domain.Address) AddressPayload {
	params := address.Params()
	return AddressPayload{
		Calle:        params.Street,
		Altura:       params.Number,
		Piso:         params.Floor,
		Departamento: params.Unit,
		CodPostal:    params.PostalCode,
		Ciudad:       params.City,
		Provincia:    params.Province,
		Pais:         params.Country,
		Lat:          params.Latitude,
		Lon:          params.Longitude,
	}
}
