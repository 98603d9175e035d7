package errors

import "errors"

var (
	ErrNotFound    = errors.New("resource not found")
	ErrDuplicate   = errors.New("resource already exists")
	ErrUnavailable = errors.New("collaborator unavailable")
)
