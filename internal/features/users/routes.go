package users

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /users/me and /leaderboard behind authMiddleware
func RegisterRoutes(v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(service)

	me := v1.Group("/users/me")
	me.Use(authMiddleware)
	{
		me.GET("", handler.GetMe)
		me.PATCH("", handler.UpdateMe)
	}

	v1.GET("/leaderboard", authMiddleware, handler.Leaderboard)
}
