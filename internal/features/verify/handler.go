package verify

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
)

type Handler struct {
	verifier Verifier
}

func NewHandler(verifier Verifier) *Handler {
	return &Handler{verifier: verifier}
}

// VerifyImage godoc
// @Summary Verify a report photo with AI
// @Description Classify an uploaded photo as a genuine civic issue. Responds with the bare verdict for older clients.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo of the issue"
// @Param category formData string false "Claimed category"
// @Success 200 {object} Result
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /verify-image [post]
func (h *Handler) VerifyImage(c *gin.Context) {
	if h.verifier == nil {
		response.ServiceUnavailable(c, "AI verification is not configured", "AI_UNAVAILABLE")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image is required", "MISSING_IMAGE")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		response.BadRequest(c, "Failed to read image", "INVALID_FILE")
		return
	}
	if err := storage.ValidateImage(header.Filename, data); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), data, storage.ContentType(data), c.PostForm("category"))
	if err != nil {
		logger.Error("AI verification failed: %v", err)
		response.BadGateway(c, "AI verification failed", "AI_VERIFICATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, result)
}
