package attendance

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/pkg/query"
	"github.com/campward/campward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "attendance_records", "a").
	Project("id", "ID").
	Project("camp_id", "CampID").
	Project("camper_id", "CamperID").
	Project("day", "Day").
	Project("checked_in_at", "CheckedInAt").
	Project("checked_out_at", "CheckedOutAt").
	Project("notes", "Notes")

var defaultSort = query.SortField{
	Field:      "CheckedInAt",
	Descending: true,
}

// Filters contains optional filtering criteria for attendance queries.
// Nil fields are ignored. Day matches the calendar date exactly; From and To
// bound the date range.
type Filters struct {
	CampID   *uuid.UUID `json:"camp_id,omitempty"`
	CamperID *uuid.UUID `json:"camper_id,omitempty"`
	Day      *time.Time `json:"day,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CampID", f.CampID).
		WhereEquals("CamperID", f.CamperID).
		WhereEquals("Day", f.Day).
		WhereAfter("Day", f.From).
		WhereBefore("Day", f.To)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Dates use the 2006-01-02 form.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if id, err := uuid.Parse(values.Get("camp_id")); err == nil {
		f.CampID = &id
	}
	if id, err := uuid.Parse(values.Get("camper_id")); err == nil {
		f.CamperID = &id
	}
	if d := values.Get("day"); d != "" {
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			f.Day = &t
		}
	}
	if d := values.Get("from"); d != "" {
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			f.From = &t
		}
	}
	if d := values.Get("to"); d != "" {
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			f.To = &t
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.CampID,
		&r.CamperID,
		&r.Day,
		&r.CheckedInAt,
		&r.CheckedOutAt,
		&r.Notes,
	)
	return r, err
}
