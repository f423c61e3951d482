package campers

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/query"
	"github.com/campward/campward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "campers", "cp").
	Project("id", "ID").
	Project("camp_id", "CampID").
	Project("full_name", "FullName").
	Project("date_of_birth", "DateOfBirth").
	Project("reported_grade", "ReportedGrade").
	Project("squad_id", "SquadID").
	Project("medical_notes", "MedicalNotes").
	Project("allergies", "Allergies").
	Project("special_considerations", "SpecialConsiderations").
	Project("leadership_potential", "LeadershipPotential").
	Project("status", "Status").
	Project("registered_at", "RegisteredAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "FullName"}

// Filters contains optional filtering criteria for roster queries.
// Nil fields are ignored.
type Filters struct {
	CampID  *uuid.UUID `json:"camp_id,omitempty"`
	SquadID *uuid.UUID `json:"squad_id,omitempty"`
	Status  *string    `json:"status,omitempty"`
	Name    *string    `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CampID", f.CampID).
		WhereEquals("SquadID", f.SquadID).
		WhereEquals("Status", f.Status).
		WhereContains("FullName", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if id, err := uuid.Parse(values.Get("camp_id")); err == nil {
		f.CampID = &id
	}
	if id, err := uuid.Parse(values.Get("squad_id")); err == nil {
		f.SquadID = &id
	}
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanCamper(s repository.Scanner) (Camper, error) {
	var c Camper
	err := s.Scan(
		&c.ID,
		&c.CampID,
		&c.FullName,
		&c.DateOfBirth,
		&c.ReportedGrade,
		&c.SquadID,
		&c.MedicalNotes,
		&c.Allergies,
		&c.SpecialConsiderations,
		&c.LeadershipPotential,
		&c.Status,
		&c.RegisteredAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanFriendRequest(s repository.Scanner) (FriendRequest, error) {
	var fr FriendRequest
	err := s.Scan(
		&fr.ID,
		&fr.CampID,
		&fr.FromCamperID,
		&fr.ToCamperID,
		&fr.RequestedAt,
	)
	return fr, err
}
