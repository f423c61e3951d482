package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Domain errors for grouping operations.
var (
	ErrInvalidConfig     = errors.New("invalid grouping config")
	ErrCamperNotFound    = errors.New("camper not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrInvalidStatus     = errors.New("unknown grouping status")
	ErrInvalidTransition = errors.New("invalid grouping status transition")
	ErrNoteRequired      = errors.New("resolution note required")
)

// FinalizeBlockedError reports a rejected finalize attempt along with the
// unresolved hard violations that block it.
type FinalizeBlockedError struct {
	ViolationIDs []uuid.UUID
}

func (e *FinalizeBlockedError) Error() string {
	ids := make([]string, len(e.ViolationIDs))
	for i, id := range e.ViolationIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf(
		"finalize blocked by %d unresolved hard violations: %s",
		len(e.ViolationIDs),
		strings.Join(ids, ", "),
	)
}

// MapHTTPStatus maps engine errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var blocked *FinalizeBlockedError
	if errors.As(err, &blocked) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrNoteRequired) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrCamperNotFound) || errors.Is(err, ErrGroupNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
