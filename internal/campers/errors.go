package campers

import (
	"errors"
	"net/http"
)

// Domain errors for roster operations.
var (
	ErrNotFound        = errors.New("camper not found")
	ErrFriendNotFound  = errors.New("friend request not found")
	ErrDuplicate       = errors.New("camper already registered")
	ErrInvalidCamper   = errors.New("invalid camper")
	ErrSelfFriend      = errors.New("camper cannot friend themselves")
	ErrCrossCampFriend = errors.New("friend requests must stay within one camp")
	ErrCancelled       = errors.New("camper registration is cancelled")
)

// MapHTTPStatus maps roster domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrFriendNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCamper) ||
		errors.Is(err, ErrSelfFriend) ||
		errors.Is(err, ErrCrossCampFriend) ||
		errors.Is(err, ErrCancelled) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
