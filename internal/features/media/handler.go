package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
)

var errMissingImage = errors.New("image is required")

type Handler struct {
	uploader storage.Uploader
}

func NewHandler(uploader storage.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// UploadImageResponse is the bare body older clients expect
type UploadImageResponse struct {
	Success bool   `json:"success" example:"true"`
	URL     string `json:"url" example:"https://res.cloudinary.com/demo/image/upload/v1/reports/a.jpg"`
}

// UploadImage godoc
// @Summary Upload a report photo
// @Description Store a photo and return its public URL. Responds with a bare body for older clients.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo to upload"
// @Success 200 {object} UploadImageResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /upload-image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	result, ok := h.upload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, UploadImageResponse{Success: true, URL: result.URL})
}

// UploadMedia godoc
// @Summary Upload a photo
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Photo to upload"
// @Success 200 {object} response.APIResponse{data=storage.UploadResult}
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /v1/media/upload [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	result, ok := h.upload(c)
	if !ok {
		return
	}
	response.Success(c, result)
}

func (h *Handler) upload(c *gin.Context) (*storage.UploadResult, bool) {
	data, filename, err := readImage(c)
	if err != nil {
		code := "INVALID_FILE"
		if errors.Is(err, errMissingImage) {
			code = "MISSING_IMAGE"
		}
		response.BadRequest(c, err.Error(), code)
		return nil, false
	}

	result, err := h.uploader.UploadImage(c.Request.Context(), data, filename)
	if err != nil {
		logger.Error("media: upload %s: %v", filename, err)
		response.BadGateway(c, "Failed to upload image", "UPLOAD_FAILED")
		return nil, false
	}
	return result, true
}

func readImage(c *gin.Context) ([]byte, string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, "", errMissingImage
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		return nil, "", err
	}
	if err := storage.ValidateImage(header.Filename, data); err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}
