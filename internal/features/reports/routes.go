package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/middleware"
)

// RegisterRoutes mounts the legacy submit endpoint and the /reports group.
// The group is returned so the live stream can be attached under it.
func RegisterRoutes(legacy, v1 *gin.RouterGroup, service *Service, authMiddleware gin.HandlerFunc) *gin.RouterGroup {
	handler := NewHandler(service)

	legacy.POST("/submit-report", authMiddleware, handler.SubmitReport)

	reports := v1.Group("/reports")
	reports.Use(authMiddleware)
	{
		reports.POST("", handler.CreateReport)
		reports.GET("", middleware.RequireAdmin(), handler.ListReports)
		reports.GET("/mine", handler.MyReports)
		reports.GET("/:id", handler.GetReport)
		reports.POST("/:id/transition", middleware.RequireAdmin(), handler.TransitionReport)
	}

	return reports
}
