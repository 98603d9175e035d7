package teams

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/middleware"
)

func RegisterRoutes(v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(service)
	v1.GET("/teams", authMiddleware, middleware.RequireAdmin(), handler.GetBoard)
}
