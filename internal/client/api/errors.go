package api

import (
	"errors"
	"net/http"

	"github.com/vpetrenko/promptmart/internal/common"
)

// Error is a rejection reported by the backend. It unwraps to the matching
// sentinel in common so callers can branch with errors.Is while still
// surfacing the server-provided message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}

// ServerMessage extracts the backend-provided message from err, or "" when
// err carries none (e.g. a transport failure).
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
