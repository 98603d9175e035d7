package broadcasts

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxMessageLength = 500

func ValidateCreateBroadcast(req *CreateBroadcastRequest) error {
	if strings.TrimSpace(req.Area) == "" {
		return errors.New("area is required")
	}
	if !knownTypes[req.Type] {
		return fmt.Errorf("unknown alert type %q", req.Type)
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return errors.New("message is required")
	}
	if utf8.RuneCountInString(msg) > maxMessageLength {
		return fmt.Errorf("message cannot exceed %d characters", maxMessageLength)
	}
	return nil
}
