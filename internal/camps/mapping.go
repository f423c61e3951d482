package camps

import (
	"net/url"
	"time"

	"github.com/campward/campward/pkg/query"
	"github.com/campward/campward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "camps", "c").
	Project("id", "ID").
	Project("name", "Name").
	Project("location", "Location").
	Project("start_date", "StartDate").
	Project("end_date", "EndDate").
	Project("registration_cutoff", "RegistrationCutoff").
	Project("max_group_size", "MaxGroupSize").
	Project("max_grade_spread", "MaxGradeSpread").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "StartDate",
	Descending: true,
}

// Filters contains optional filtering criteria for camp queries.
// Nil fields are ignored. Name and Location use case-insensitive contains
// matching; StartsAfter and StartsBefore bound the camp start date.
type Filters struct {
	Name         *string    `json:"name,omitempty"`
	Location     *string    `json:"location,omitempty"`
	StartsAfter  *time.Time `json:"starts_after,omitempty"`
	StartsBefore *time.Time `json:"starts_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereContains("Location", f.Location).
		WhereAfter("StartDate", f.StartsAfter).
		WhereBefore("StartDate", f.StartsBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if l := values.Get("location"); l != "" {
		f.Location = &l
	}
	if sa := values.Get("starts_after"); sa != "" {
		if t, err := time.Parse(time.RFC3339, sa); err == nil {
			f.StartsAfter = &t
		}
	}
	if sb := values.Get("starts_before"); sb != "" {
		if t, err := time.Parse(time.RFC3339, sb); err == nil {
			f.StartsBefore = &t
		}
	}

	return f
}

func scanCamp(s repository.Scanner) (Camp, error) {
	var c Camp
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Location,
		&c.StartDate,
		&c.EndDate,
		&c.RegistrationCutoff,
		&c.MaxGroupSize,
		&c.MaxGradeSpread,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
