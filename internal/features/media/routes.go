package media

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
)

// RegisterRoutes mounts the legacy upload endpoint and /media/upload
func RegisterRoutes(legacy, v1 *gin.RouterGroup, uploader storage.Uploader, authMiddleware gin.HandlerFunc) {
	handler := NewHandler(uploader)

	legacy.POST("/upload-image", handler.UploadImage)

	media := v1.Group("/media")
	media.Use(authMiddleware)
	{
		media.POST("/upload", handler.UploadMedia)
	}
}
