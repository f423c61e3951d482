package engine

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Status is the grouping session lifecycle state.
type Status string

// Grouping session statuses.
const (
	StatusPending     Status = "pending"
	StatusAutoGrouped Status = "auto_grouped"
	StatusReviewed    Status = "reviewed"
	StatusFinalized   Status = "finalized"
)

var statuses = []Status{
	StatusPending,
	StatusAutoGrouped,
	StatusReviewed,
	StatusFinalized,
}

// Event is an operation that drives a status transition.
type Event string

// Status machine events. EventRun covers both the first solve and a rerun;
// a rerun overwrites manual moves, so callers confirm it before invoking.
const (
	EventRun      Event = "run"
	EventMove     Event = "move"
	EventResolve  Event = "resolve"
	EventFinalize Event = "finalize"
	EventUnlock   Event = "unlock"
)

// ParseStatus validates a string as a known grouping status.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !slices.Contains(statuses, v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Transition returns the status that results from applying the event, or
// ErrInvalidTransition when the event is not valid in the current status.
// The finalize gate on unresolved hard violations is enforced by the caller;
// this machine only governs the shape of the lifecycle.
func Transition(s Status, e Event) (Status, error) {
	switch e {
	case EventRun:
		if s == StatusPending || s == StatusAutoGrouped || s == StatusReviewed {
			return StatusAutoGrouped, nil
		}
	case EventMove:
		if s == StatusAutoGrouped || s == StatusReviewed {
			return StatusReviewed, nil
		}
	case EventResolve:
		if s == StatusAutoGrouped || s == StatusReviewed {
			return s, nil
		}
	case EventFinalize:
		if s == StatusAutoGrouped || s == StatusReviewed {
			return StatusFinalized, nil
		}
	case EventUnlock:
		if s == StatusFinalized {
			return StatusAutoGrouped, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, e, s)
}
