package auth

import (
	"errors"
	"strings"

	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/pkg/validator"
)

// ValidateRegister runs the sign-up form checks
func ValidateRegister(req *RegisterRequest) error {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != users.RoleCitizen && role != users.RoleAdmin {
		return errors.New("role must be citizen or admin")
	}
	if !validator.IsValidName(req.FirstName) {
		return errors.New("first name must be at least 2 letters")
	}
	if !validator.IsValidEmail(req.Email) {
		return errors.New("invalid email address")
	}
	if req.Mobile != "" && !validator.IsValidPhone(req.Mobile) {
		return errors.New("mobile must be a valid phone number in international format")
	}
	if role == users.RoleAdmin {
		if strings.TrimSpace(req.Department) == "" {
			return errors.New("department is required for officials")
		}
		if strings.TrimSpace(req.SecretCode) == "" {
			return errors.New("secret code is required for officials")
		}
	}
	return nil
}
