package reports

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xyz-asif/nagaralert/internal/pkg/validator"
)

const maxDescriptionLength = 1000

// ValidateCategory accepts an empty category (derived later) or a known one
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return nil
	}
	if _, ok := ParseCategory(category); !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// ValidateLocation checks coordinate ranges. (0,0) means the client had no fix.
func ValidateLocation(loc Location) error {
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return nil
	}
	if !validator.IsValidCoordinate(loc.Latitude, loc.Longitude) {
		return errors.New("location coordinates are out of range")
	}
	return nil
}

// ValidateDescription limits free text length
func ValidateDescription(description string) error {
	if len([]rune(description)) > maxDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", maxDescriptionLength)
	}
	return nil
}

// ValidateSubmitRequest runs the form-level checks for a JSON submission
func ValidateSubmitRequest(req *SubmitReportRequest) error {
	if !validator.IsValidURL(req.ImageURL) {
		return errors.New("imageUrl must be a valid http(s) URL")
	}
	category := req.Category
	if category == "" {
		category = req.Type
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}
	if err := ValidateDescription(req.Description); err != nil {
		return err
	}
	return ValidateLocation(req.Location)
}

// ValidateTransitionRequest checks the action name before the store is read
func ValidateTransitionRequest(req *TransitionRequest) error {
	req.Action = ParseAction(string(req.Action))
	switch req.Action {
	case ActionAccept, ActionReject, ActionResolve:
		return nil
	case ActionAssign:
		if strings.TrimSpace(req.Team) == "" {
			return ErrTeamRequired
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", req.Action)
}
