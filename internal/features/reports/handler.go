package reports

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/middleware"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/pagination"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitReport godoc
// @Summary Submit a report with an already uploaded image
// @Description Older clients verify and upload first, then post the report JSON here
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitReportRequest true "Report"
// @Success 201 {object} response.APIResponse{data=Report}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /submit-report [post]
func (h *Handler) SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateSubmitRequest(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	report, err := h.service.SubmitUploaded(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, report, "Report submitted")
}

// CreateReport godoc
// @Summary Submit a report in one request
// @Description Verifies the photo with AI and uploads it concurrently, then stores the report
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Photo of the issue"
// @Param category formData string false "pothole, garbage, light, water, fire or general"
// @Param description formData string false "Description"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param address formData string false "Reverse-geocoded address"
// @Success 201 {object} response.APIResponse{data=Report}
// @Failure 400 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /v1/reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
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

	sub := Submission{
		UserID:      c.GetString("userID"),
		Citizen:     !middleware.IsAdmin(c),
		Image:       data,
		Filename:    header.Filename,
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Location: Location{
			Latitude:  formFloat(c, "latitude"),
			Longitude: formFloat(c, "longitude"),
			Address:   c.PostForm("address"),
		},
	}

	if err := ValidateCategory(sub.Category); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}
	if err := ValidateDescription(sub.Description); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}
	if err := ValidateLocation(sub.Location); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	report, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, report, "Report submitted")
}

// ListReports godoc
// @Summary List incidents
// @Description Admin incident list filtered by status and free-text search over id, address and category
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "All, Pending, Verified, In Progress, Resolved, Rejected"
// @Param search query string false "Search term"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=ListResponse}
// @Failure 403 {object} response.APIResponse
// @Router /v1/reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	var f Filter
	_ = c.ShouldBindQuery(&f)

	pageReq := pagination.FromRequest(c.Query("page"), c.Query("limit"))

	result, err := h.service.Search(c.Request.Context(), f, pageReq.Page, pageReq.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, result)
}

// MyReports godoc
// @Summary List my reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Success 200 {object} response.APIResponse{data=response.PageData{items=[]Report}}
// @Router /v1/reports/mine [get]
func (h *Handler) MyReports(c *gin.Context) {
	items, err := h.service.Mine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	pageReq := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	p := pagination.New(pageReq.Page, pageReq.Limit, int64(len(items)))
	start, end := p.Bounds()

	response.Paginated(c, items[start:end], p.Total, p.Limit, p.Page)
}

// GetReport godoc
// @Summary Get a report
// @Description Citizens may only read their own reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.APIResponse{data=Report}
// @Failure 404 {object} response.APIResponse
// @Router /v1/reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !middleware.IsAdmin(c) && report.UserID != c.GetString("userID") {
		response.NotFound(c, "Report not found", "REPORT_NOT_FOUND")
		return
	}

	response.Success(c, report)
}

// TransitionReport godoc
// @Summary Move a report through its lifecycle
// @Description accept and reject apply to Pending reports, assign (with team) to Accepted, resolve to In Progress
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body TransitionRequest true "Action"
// @Success 200 {object} response.APIResponse{data=Mutation}
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse{data=Mutation}
// @Failure 500 {object} response.APIResponse{data=Mutation}
// @Router /v1/reports/{id}/transition [post]
func (h *Handler) TransitionReport(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := ValidateTransitionRequest(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	m, err := h.service.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case m == nil:
			h.writeError(c, err)
		case errors.Is(err, ErrInvalidTransition):
			response.ErrorWithData(c, http.StatusConflict, err.Error(), "INVALID_TRANSITION", m)
		default:
			logger.Error("Transition of report %s failed: %v", c.Param("id"), err)
			response.ErrorWithData(c, http.StatusInternalServerError, "Failed to update report", "DATABASE_ERROR", m)
		}
		return
	}

	response.Success(c, m)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, "Report not found", "REPORT_NOT_FOUND")
	case errors.Is(err, apperrors.ErrUnavailable):
		response.ServiceUnavailable(c, "Image storage is not configured", "STORAGE_UNAVAILABLE")
	case errors.Is(err, ErrImageRequired):
		response.BadRequest(c, err.Error(), "MISSING_IMAGE")
	case errors.Is(err, ErrUploadFailed):
		logger.Error("Report image upload failed: %v", err)
		response.BadGateway(c, "Failed to upload image", "UPLOAD_FAILED")
	case IsClientError(err):
		response.ValidationFailed(c, err.Error())
	default:
		logger.Error("Report store error: %v", err)
		response.DatabaseError(c, "Failed to access reports")
	}
}

func formFloat(c *gin.Context, key string) float64 {
	v, _ := strconv.ParseFloat(c.PostForm(key), 64)
	return v
}
