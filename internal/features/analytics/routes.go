package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/middleware"
)

func RegisterRoutes(v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(service)

	analytics := v1.Group("/analytics")
	analytics.Use(authMiddleware, middleware.RequireAdmin())
	{
		analytics.GET("", handler.GetDashboard)
		analytics.GET("/summary", handler.GetSummary)
	}
}
