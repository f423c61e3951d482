// Package camps implements the camp session domain for Campward.
// It provides types, data access, and business logic for camp sessions:
// the tenant root that campers register into and grouping sessions run
// against, carrying dates and per-camp grouping limits.
package camps

import (
	"time"

	"github.com/google/uuid"
)

// Camp represents a single camp session with its dates and grouping limits.
type Camp struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	RegistrationCutoff time.Time `json:"registration_cutoff"`
	MaxGroupSize       int       `json:"max_group_size"`
	MaxGradeSpread     int       `json:"max_grade_spread"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new camp session.
// Zero grouping limits fall back to the service-wide defaults.
type CreateCommand struct {
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	RegistrationCutoff time.Time `json:"registration_cutoff"`
	MaxGroupSize       int       `json:"max_group_size"`
	MaxGradeSpread     int       `json:"max_grade_spread"`
}

// UpdateCommand carries updatable camp fields. Nil fields are left unchanged.
type UpdateCommand struct {
	Name               *string    `json:"name"`
	Location           *string    `json:"location"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	RegistrationCutoff *time.Time `json:"registration_cutoff"`
	MaxGroupSize       *int       `json:"max_group_size"`
	MaxGradeSpread     *int       `json:"max_grade_spread"`
}
