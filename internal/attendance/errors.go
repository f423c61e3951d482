package attendance

import (
	"errors"
	"net/http"
)

// Domain errors for attendance operations.
var (
	ErrCamperNotFound    = errors.New("camper not found")
	ErrAlreadyCheckedIn  = errors.New("camper already checked in today")
	ErrNotCheckedIn      = errors.New("camper has no open check-in today")
	ErrAlreadyCheckedOut = errors.New("camper already checked out today")
	ErrInvalidRecord     = errors.New("invalid attendance record")
)

// MapHTTPStatus maps attendance domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrCamperNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrAlreadyCheckedIn) || errors.Is(err, ErrAlreadyCheckedOut) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotCheckedIn) || errors.Is(err, ErrInvalidRecord) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
