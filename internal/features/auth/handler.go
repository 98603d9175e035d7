package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateSession godoc
// @Summary Sign in
// @Description Exchange a Firebase ID token for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SessionRequest true "Firebase ID token"
// @Success 200 {object} response.APIResponse{data=SessionResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /v1/auth/session [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	session, err := h.service.Session(c.Request.Context(), req.IDToken)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, session, "Signed in")
}

// Register godoc
// @Summary Register a citizen or official
// @Description Officials must supply the admin secret code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Profile"
// @Success 201 {object} response.APIResponse{data=SessionResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := ValidateRegister(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, session, "Account created")
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the user's Firebase refresh tokens
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString("userID")); err != nil {
		logger.Error("Logout failed: %v", err)
		response.BadGateway(c, "Failed to sign out", "AUTH_PROVIDER_ERROR")
		return
	}
	response.Success(c, nil, "Signed out")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidIDToken):
		response.AuthenticationError(c, "Invalid or expired ID token")
	case errors.Is(err, ErrNotRegistered):
		response.NotFound(c, "Account not registered", "USER_NOT_REGISTERED")
	case errors.Is(err, ErrAlreadyRegistered):
		response.Conflict(c, "Account already registered", "ALREADY_REGISTERED")
	case errors.Is(err, ErrEmailInUse):
		response.Conflict(c, "Email is already in use by another account", "EMAIL_IN_USE")
	case errors.Is(err, ErrInvalidSecretCode):
		response.Forbidden(c, "Invalid secret code", "INVALID_SECRET_CODE")
	default:
		logger.Error("Auth error: %v", err)
		response.DatabaseError(c, "Failed to access user profiles")
	}
}
