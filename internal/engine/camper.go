package engine

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/formatting"
)

// School-year cutoff used to compute the validated grade from date of birth.
// A camper entering Kindergarten is five years old on September 1 of the camp year.
const (
	gradeCutoffMonth = time.September
	gradeCutoffDay   = 1
	kindergartenAge  = 5
)

// RawCamper is an unprocessed registration record as stored by the roster domain.
type RawCamper struct {
	AthleteID             uuid.UUID
	FullName              string
	DateOfBirth           *time.Time
	ReportedGrade         *int
	SquadID               *uuid.UUID
	MedicalNotes          string
	Allergies             string
	SpecialConsiderations string
	LeadershipPotential   bool
	RegisteredAt          time.Time
}

// Camper is the canonical camper record consumed by the solver and the UI.
// Grade is nil when the date of birth is missing; such campers are excluded
// from grade-spread evaluation.
type Camper struct {
	AthleteID             uuid.UUID  `json:"athlete_id"`
	FullName              string     `json:"full_name"`
	Grade                 *int       `json:"grade"`
	GradeDisplay          string     `json:"grade_display"`
	GradeDiscrepancy      bool       `json:"grade_discrepancy"`
	AgeAtCampStart        int        `json:"age_at_camp_start"`
	FriendGroupID         *int       `json:"friend_group_id"`
	SquadID               *uuid.UUID `json:"squad_id"`
	LateRegistration      bool       `json:"late_registration"`
	MedicalNotes          string     `json:"medical_notes"`
	Allergies             string     `json:"allergies"`
	SpecialConsiderations string     `json:"special_considerations"`
	LeadershipPotential   bool       `json:"leadership_potential"`
}

// Roster indexes standardized campers by athlete ID.
type Roster map[uuid.UUID]Camper

// NewRoster builds a Roster from a camper slice.
func NewRoster(campers []Camper) Roster {
	r := make(Roster, len(campers))
	for _, c := range campers {
		r[c.AthleteID] = c
	}
	return r
}

// Standardize normalizes raw registration records into canonical campers and
// resolves friend groups. The computed grade is authoritative for grouping;
// a disagreeing parent-reported grade only sets GradeDiscrepancy for review.
func Standardize(
	raw []RawCamper,
	requests []FriendRequest,
	cfg Config,
	cutoff time.Time,
	campStart time.Time,
) ([]Camper, []FriendGroup) {
	friendGroups := ResolveFriendGroups(requests, raw, cfg.RequireMutualFriends)

	membership := make(map[uuid.UUID]int)
	for _, fg := range friendGroups {
		for _, id := range fg.CamperIDs {
			membership[id] = fg.ID
		}
	}

	campers := make([]Camper, 0, len(raw))
	for _, rc := range raw {
		c := Camper{
			AthleteID:             rc.AthleteID,
			FullName:              rc.FullName,
			SquadID:               rc.SquadID,
			MedicalNotes:          rc.MedicalNotes,
			Allergies:             rc.Allergies,
			SpecialConsiderations: rc.SpecialConsiderations,
			LeadershipPotential:   rc.LeadershipPotential,
			LateRegistration:      !cutoff.IsZero() && rc.RegisteredAt.After(cutoff),
			GradeDisplay:          "Unknown",
		}

		if rc.DateOfBirth != nil {
			grade := gradeFromDOB(*rc.DateOfBirth, campStart)
			c.Grade = &grade
			c.GradeDisplay = formatting.GradeDisplay(grade)
			c.AgeAtCampStart = formatting.AgeAt(*rc.DateOfBirth, campStart)
			c.GradeDiscrepancy = rc.ReportedGrade != nil && *rc.ReportedGrade != grade
		}

		if fgID, ok := membership[rc.AthleteID]; ok {
			c.FriendGroupID = &fgID
		}

		campers = append(campers, c)
	}

	slices.SortFunc(campers, func(a, b Camper) int {
		if n := strings.Compare(a.FullName, b.FullName); n != 0 {
			return n
		}
		return strings.Compare(a.AthleteID.String(), b.AthleteID.String())
	})

	return campers, friendGroups
}

// gradeFromDOB derives the validated grade from the camper's age on the
// school-year cutoff of the camp year, clamped to the Pre-K..12 range.
func gradeFromDOB(dob, campStart time.Time) int {
	cutoff := time.Date(campStart.Year(), gradeCutoffMonth, gradeCutoffDay, 0, 0, 0, 0, time.UTC)
	grade := formatting.AgeAt(dob, cutoff) - kindergartenAge

	if grade < formatting.GradePreK {
		grade = formatting.GradePreK
	}
	if grade > formatting.GradeMax {
		grade = formatting.GradeMax
	}
	return grade
}
