package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /auth. Only logout needs a session.
func RegisterRoutes(v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(service)

	auth := v1.Group("/auth")
	{
		auth.POST("/session", handler.CreateSession)
		auth.POST("/register", handler.Register)
		auth.POST("/logout", authMiddleware, handler.Logout)
	}
}
