// Package attendance implements daily check-in and check-out records for
// campers. One record exists per camper per day; checking in twice on the
// same day is rejected, and checkout requires an open check-in.
package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Record is a single camper-day attendance entry.
type Record struct {
	ID           uuid.UUID  `json:"id"`
	CampID       uuid.UUID  `json:"camp_id"`
	CamperID     uuid.UUID  `json:"camper_id"`
	Day          time.Time  `json:"day"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at"`
	Notes        string     `json:"notes"`
}

// CheckCommand identifies the camper for a check-in or check-out. A zero Day
// defaults to the current date in UTC.
type CheckCommand struct {
	CamperID uuid.UUID `json:"camper_id"`
	Day      time.Time `json:"day"`
	Notes    string    `json:"notes"`
}
