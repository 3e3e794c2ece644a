package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the order lifecycle endpoints on the router group.
func RegisterRoutes(group *gin.RouterGroup, api *OrdersAPI) {
	group.POST("/pedidos", api.CreateOrder)
	group.GET("/pedidos", api.ListOrders)
	group.GET("/pedidos/:pedidoId", api.GetOrder)
	group.PATCH("/pedidos/:pedidoId/confirmar", api.ConfirmOrder)
	group.PATCH("/pedidos/:pedidoId/cancelar", api.CancelOrder)
	group.PATCH("/pedidos/:pedidoId/enviar", api.ShipOrder)
}

// RegisterHealth mounts the liveness probe.
func RegisterHealth(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
}
