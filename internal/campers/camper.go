// Package campers implements the roster domain for Campward. It owns
// camper registrations, friend requests, and cancellation. Registration
// records stay raw here; grade validation and friend-group resolution
// happen in the engine when a grouping session standardizes the roster.
package campers

import (
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
)

// Camper status values.
const (
	StatusRegistered = "registered"
	StatusCancelled  = "cancelled"
)

// Camper represents a camper registration within a camp.
type Camper struct {
	ID                    uuid.UUID  `json:"id"`
	CampID                uuid.UUID  `json:"camp_id"`
	FullName              string     `json:"full_name"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	ReportedGrade         *int       `json:"reported_grade"`
	SquadID               *uuid.UUID `json:"squad_id"`
	MedicalNotes          string     `json:"medical_notes"`
	Allergies             string     `json:"allergies"`
	SpecialConsiderations string     `json:"special_considerations"`
	LeadershipPotential   bool       `json:"leadership_potential"`
	Status                string     `json:"status"`
	RegisteredAt          time.Time  `json:"registered_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Raw converts the registration into the unprocessed record consumed by
// engine.Standardize.
func (c Camper) Raw() engine.RawCamper {
	return engine.RawCamper{
		AthleteID:             c.ID,
		FullName:              c.FullName,
		DateOfBirth:           c.DateOfBirth,
		ReportedGrade:         c.ReportedGrade,
		SquadID:               c.SquadID,
		MedicalNotes:          c.MedicalNotes,
		Allergies:             c.Allergies,
		SpecialConsiderations: c.SpecialConsiderations,
		LeadershipPotential:   c.LeadershipPotential,
		RegisteredAt:          c.RegisteredAt,
	}
}

// FriendRequest records that one camper asked to be grouped with another.
// Requests are one-directional; whether a single direction binds is a
// grouping configuration concern.
type FriendRequest struct {
	ID           uuid.UUID `json:"id"`
	CampID       uuid.UUID `json:"camp_id"`
	FromCamperID uuid.UUID `json:"from_camper_id"`
	ToCamperID   uuid.UUID `json:"to_camper_id"`
	RequestedAt  time.Time `json:"requested_at"`
}

// CreateCommand carries the data needed to register a camper.
type CreateCommand struct {
	CampID                uuid.UUID  `json:"camp_id"`
	FullName              string     `json:"full_name"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	ReportedGrade         *int       `json:"reported_grade"`
	SquadID               *uuid.UUID `json:"squad_id"`
	MedicalNotes          string     `json:"medical_notes"`
	Allergies             string     `json:"allergies"`
	SpecialConsiderations string     `json:"special_considerations"`
	LeadershipPotential   bool       `json:"leadership_potential"`
}

// FriendCommand carries the target of a friend request.
type FriendCommand struct {
	FriendID uuid.UUID `json:"friend_id"`
}
