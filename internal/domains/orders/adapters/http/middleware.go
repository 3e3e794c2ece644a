package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

// Identity headers set by the edge gateway after authenticating the caller.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// ActorMiddleware lifts the gateway identity headers into the request context.
// Requests without an identity pass through; handlers that require an actor
// reject them with a 401.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID != "" {
			actor := ports.Actor{
				ID:   userID,
				Role: strings.TrimSpace(c.GetHeader(HeaderUserRole)),
			}
			c.Request = c.Request.WithContext(ports.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}
