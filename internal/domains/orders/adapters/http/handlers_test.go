package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/feriahub/marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/feriahub/marketplace-api/internal/domains/orders/application"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
	sharederrors "github.com/feriahub/marketplace-api/internal/shared/errors"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := memory.NewCatalog()
	catalog.Seed(
		ports.Product{ID: "prod-1", Name: "Mate Imperial", SellerID: "seller-1", Stock: 10, PriceCents: 1850_00},
		ports.Product{ID: "prod-2", Name: "Yerba Organica", SellerID: "seller-2", Stock: 5, PriceCents: 420_00},
	)
	service := application.NewService(memory.NewRepository(), catalog, memory.NewNotifier())
	api := NewOrdersAPI(service, nil, sharederrors.NewResponder("", OrderErrorMapper))

	router := gin.New()
	router.Use(ActorMiddleware())
	RegisterHealth(router)
	RegisterRoutes(router.Group("/"), api)
	return router, catalog
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func buyerHeaders() map[string]string {
	return map[string]string{HeaderUserID: "buyer-1", HeaderUserRole: ports.RoleBuyer}
}

func sellerHeaders(id string) map[string]string {
	return map[string]string{HeaderUserID: id, HeaderUserRole: ports.RoleSeller}
}

func validCreateBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productoId": "prod-1", "cantidad": 2},
			{"productoId": "prod-2", "cantidad": 1},
		},
		"moneda": "ARS",
		"direccionEntrega": map[string]any{
			"calle":     "Av. Corrientes",
			"altura":    1234,
			"ciudad":    "Buenos Aires",
			"provincia": "CABA",
			"pais":      "Argentina",
		},
	}
}

func placeOrder(t *testing.T, router *gin.Engine) string {
	t.Helper()
	res := doJSON(t, router, http.MethodPost, "/pedidos", validCreateBody(), buyerHeaders())
	require.Equal(t, http.StatusCreated, res.Code)
	var envelope struct {
		Message string `json:"message"`
		Pedido  struct {
			ID     string `json:"id"`
			Estado string `json:"estado"`
		} `json:"pedido"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Pedido.ID)
	return envelope.Pedido.ID
}

func TestCreateOrder_RequiresIdentity(t *testing.T) {
	router, _ := newTestRouter(t)
	res := doJSON(t, router, http.MethodPost, "/pedidos", validCreateBody(), nil)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, sharederrors.ContentTypeProblemJSON, res.Header().Get("Content-Type"))
}

func TestCreateOrder_HappyPath(t *testing.T) {
	router, _ := newTestRouter(t)
	res := doJSON(t, router, http.MethodPost, "/pedidos", validCreateBody(), buyerHeaders())
	require.Equal(t, http.StatusCreated, res.Code)

	var envelope struct {
		Message string `json:"message"`
		Pedido  struct {
			ID          string `json:"id"`
			CompradorID string `json:"compradorId"`
			Estado      string `json:"estado"`
			Total       int64  `json:"total"`
			Items       []struct {
				VendedorID     string `json:"vendedorId"`
				PrecioUnitario int64  `json:"precioUnitario"`
			} `json:"items"`
		} `json:"pedido"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	require.Equal(t, "pedido creado", envelope.Message)
	require.Equal(t, "buyer-1", envelope.Pedido.CompradorID)
	require.Equal(t, "PENDIENTE", envelope.Pedido.Estado)
	require.Equal(t, int64(2*1850_00+420_00), envelope.Pedido.Total)
	require.Len(t, envelope.Pedido.Items, 2)
	require.Equal(t, "seller-1", envelope.Pedido.Items[0].VendedorID)
}

func TestCreateOrder_InvalidAddress(t *testing.T) {
	router, _ := newTestRouter(t)
	body := validCreateBody()
	body["direccionEntrega"].(map[string]any)["calle"] = ""

	res := doJSON(t, router, http.MethodPost, "/pedidos", body, buyerHeaders())
	require.Equal(t, http.StatusBadRequest, res.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &problem))
	require.Contains(t, problem["invalidParams"], "calle")
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	router, _ := newTestRouter(t)
	body := validCreateBody()
	body["items"] = []map[string]any{{"productoId": "prod-2", "cantidad": 6}}

	res := doJSON(t, router, http.MethodPost, "/pedidos", body, buyerHeaders())
	require.Equal(t, http.StatusConflict, res.Code)
}

func TestGetOrder_MalformedID(t *testing.T) {
	router, _ := newTestRouter(t)
	res := doJSON(t, router, http.MethodGet, "/pedidos/not-a-uuid", nil, buyerHeaders())
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	res := doJSON(t, router, http.MethodGet, "/pedidos/6f1c2a9e-8b4d-4c1e-9f3a-2d7b5e8c4a10", nil, buyerHeaders())
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestListOrders(t *testing.T) {
	router, _ := newTestRouter(t)
	placeOrder(t, router)

	res := doJSON(t, router, http.MethodGet, "/pedidos", nil, buyerHeaders())
	require.Equal(t, http.StatusOK, res.Code)
	var orders []json.RawMessage
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
}

func TestConfirmOrder_BySeller(t *testing.T) {
	router, _ := newTestRouter(t)
	orderID := placeOrder(t, router)

	res := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/confirmar", orderID), nil, sellerHeaders("seller-1"))
	require.Equal(t, http.StatusOK, res.Code)

	var order struct {
		Estado           string            `json:"estado"`
		HistorialEstados []json.RawMessage `json:"historialEstados"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &order))
	require.Equal(t, "CONFIRMADO", order.Estado)
	require.Len(t, order.HistorialEstados, 1)
}

func TestConfirmOrder_WrongSeller(t *testing.T) {
	router, _ := newTestRouter(t)
	orderID := placeOrder(t, router)

	res := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/confirmar", orderID), nil, sellerHeaders("seller-9"))
	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	router, catalog := newTestRouter(t)
	orderID := placeOrder(t, router)

	res := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/cancelar", orderID), nil, buyerHeaders())
	require.Equal(t, http.StatusOK, res.Code)

	stock, err := catalog.AvailableStock(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, 10, stock)
}

func TestCancelOrder_AfterShipConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	orderID := placeOrder(t, router)

	res := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/confirmar", orderID), nil, sellerHeaders("seller-1"))
	require.Equal(t, http.StatusOK, res.Code)
	res = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/enviar", orderID), nil, sellerHeaders("seller-1"))
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/cancelar", orderID), nil, buyerHeaders())
	require.Equal(t, http.StatusConflict, res.Code)
}

func TestShipOrder_FromPendingConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	orderID := placeOrder(t, router)

	res := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/pedidos/%s/enviar", orderID), nil, sellerHeaders("seller-1"))
	require.Equal(t, http.StatusConflict, res.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	res := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
}
