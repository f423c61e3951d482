package sessions

import (
	"errors"
	"net/http"

	"github.com/campward/campward/internal/engine"
)

// Domain errors for grouping session operations.
var (
	ErrCampNotFound      = errors.New("camp not found")
	ErrSessionNotFound   = errors.New("grouping session not found")
	ErrViolationNotFound = errors.New("violation not found")
	ErrVersionConflict   = errors.New("session version conflict")
	ErrInvalidAction     = errors.New("invalid finalize action")
	ErrInvalidGroup      = errors.New("invalid group")
)

// MapHTTPStatus maps session domain and engine errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrCampNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrViolationNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrVersionConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidAction) || errors.Is(err, ErrInvalidGroup) {
		return http.StatusBadRequest
	}
	return engine.MapHTTPStatus(err)
}
