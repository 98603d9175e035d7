package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/jwt"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
)

// Roles carried in session tokens
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// Auth validates the session JWT and stores userID and role on the context.
// Browsers cannot set headers on a websocket handshake, so a "token" query
// parameter is accepted as well.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != RoleAdmin {
			response.AuthorizationError(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the authenticated caller is an administrator
func IsAdmin(c *gin.Context) bool {
	return c.GetString("role") == RoleAdmin
}

// Support both "Bearer <token>" (case-insensitive) and raw token in header
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	fields := strings.Fields(header)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	return header
}
