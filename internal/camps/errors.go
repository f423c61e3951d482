package camps

import (
	"errors"
	"net/http"
)

// Domain errors for camp operations.
var (
	ErrNotFound     = errors.New("camp not found")
	ErrDuplicate    = errors.New("camp already exists")
	ErrInvalidCamp  = errors.New("invalid camp")
	ErrInvalidDates = errors.New("camp end date precedes start date")
)

// MapHTTPStatus maps camp domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCamp) || errors.Is(err, ErrInvalidDates) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
