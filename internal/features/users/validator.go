package users

import (
	"errors"
	"strings"

	"github.com/xyz-asif/nagaralert/internal/pkg/validator"
)

// ValidateUpdateProfile checks only the fields that were sent
func ValidateUpdateProfile(req *UpdateProfileRequest) error {
	if req.FirstName != nil && !validator.IsValidName(*req.FirstName) {
		return errors.New("first name must be at least 2 letters")
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != "" && !validator.IsValidName(*req.LastName) {
		return errors.New("last name contains invalid characters")
	}
	if req.Mobile != nil && !validator.IsValidPhone(*req.Mobile) {
		return errors.New("mobile must be a valid phone number in international format")
	}
	if req.Address != nil && len(strings.TrimSpace(*req.Address)) > 300 {
		return errors.New("address cannot exceed 300 characters")
	}
	return nil
}
