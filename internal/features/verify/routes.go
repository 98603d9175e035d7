package verify

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the legacy verification endpoint
func RegisterRoutes(api *gin.RouterGroup, verifier Verifier) {
	handler := NewHandler(verifier)
	api.POST("/verify-image", handler.VerifyImage)
}
