// Package sessions implements the grouping session domain for Campward.
// A session tracks the grouping lifecycle of one camp: solver runs, manual
// moves, violation resolution, and finalization. All mutating operations
// serialize through a per-camp lock and a row lock on the session, and every
// mutation bumps the session version for optimistic concurrency.
package sessions

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
)

// Session is the persisted grouping state of a camp.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	CampID    uuid.UUID     `json:"camp_id"`
	Status    engine.Status `json:"status"`
	Config    engine.Config `json:"config"`
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// State is the full grouping picture returned to review tooling: the
// standardized roster, resolved friend groups, group membership with derived
// stats, and current violations.
type State struct {
	Session      Session                   `json:"session"`
	Campers      []engine.Camper           `json:"campers"`
	FriendGroups []engine.FriendGroup      `json:"friend_groups"`
	Groups       []engine.Group            `json:"groups"`
	GroupStats   map[uuid.UUID]engine.Stats `json:"group_stats"`
	Ungrouped    []uuid.UUID               `json:"ungrouped"`
	Violations   []engine.Violation        `json:"violations"`
}

// AutoGroupCommand tunes a solver run. A zero NumGroups derives the count
// from the roster size and the camp's group cap. Version, when positive,
// must match the current session version.
type AutoGroupCommand struct {
	NumGroups int `json:"num_groups"`
	Version   int `json:"version"`
}

// AutoGroupResult is the response of a solver run.
type AutoGroupResult struct {
	Session  Session            `json:"session"`
	Groups   []engine.Group     `json:"groups"`
	Warnings []engine.Violation `json:"warnings"`
	Stats    engine.SolveStats  `json:"stats"`
}

// MoveCommand commits a batch of manual moves. Version, when positive,
// must match the current session version.
type MoveCommand struct {
	Moves   []engine.Move `json:"moves"`
	Version int           `json:"version"`

	// OverrideNote, when set, acknowledges violations involving the moved
	// campers: they are committed as resolved with this note.
	OverrideNote string `json:"override_note,omitempty"`
}

// ResolveCommand marks a violation resolved with a mandatory note.
type ResolveCommand struct {
	Note string `json:"note"`
}

// Finalize actions.
const (
	ActionFinalize   = "finalize"
	ActionUnfinalize = "unfinalize"
)

// FinalizeCommand locks or unlocks a session.
type FinalizeCommand struct {
	Action string `json:"action"`
}

// GroupCommand creates or updates a group shell.
type GroupCommand struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// groupPalette cycles through display colors for generated groups.
var groupPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// PaletteColor returns the display color for the nth generated group.
func PaletteColor(n int) string {
	if n < 0 {
		n = 0
	}
	return groupPalette[n%len(groupPalette)]
}

// PlanGroups prepares the group set for a solver run. Existing groups are
// reused in display order with their IDs, names, and colors intact, so
// violation keys stay stable across reruns and manual renames survive;
// membership is cleared for the solver to refill. New groups are appended
// and extras trimmed from the end only when the requested count differs.
func PlanGroups(existing []engine.Group, numGroups int) []engine.Group {
	slices.SortFunc(existing, func(a, b engine.Group) int { return a.Number - b.Number })

	groups := make([]engine.Group, numGroups)
	for i := range groups {
		if i < len(existing) {
			groups[i] = existing[i]
			groups[i].CamperIDs = nil
		} else {
			groups[i] = engine.Group{
				ID:    uuid.New(),
				Name:  fmt.Sprintf("Group %d", i+1),
				Color: PaletteColor(i),
			}
		}
		groups[i].Number = i + 1
	}
	return groups
}
