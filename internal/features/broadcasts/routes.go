package broadcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/middleware"
)

func RegisterRoutes(v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(service)

	broadcasts := v1.Group("/broadcasts")
	broadcasts.Use(authMiddleware)
	{
		broadcasts.GET("", handler.ListBroadcasts)
		broadcasts.POST("", middleware.RequireAdmin(), handler.SendBroadcast)
	}
}
