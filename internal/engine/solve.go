package engine

import (
	"slices"

	"github.com/google/uuid"
)

// SolveStats summarizes a solver run for the auto-group response.
type SolveStats struct {
	CamperCount       int     `json:"camper_count"`
	GroupCount        int     `json:"group_count"`
	FriendGroupCount  int     `json:"friend_group_count"`
	SplitFriendGroups int     `json:"split_friend_groups"`
	AverageGroupSize  float64 `json:"average_group_size"`
	LargestGroup      int     `json:"largest_group"`
}

// SolveResult carries the assignment produced by a solver run together with
// the recomputed violations and summary stats.
type SolveResult struct {
	Groups     []Group     `json:"groups"`
	Violations []Violation `json:"violations"`
	Stats      SolveStats  `json:"stats"`
}

// unit is an indivisible placement item: a whole friend group or a singleton.
type unit struct {
	friendGroupID *int
	members       []Camper
}

// Solve distributes campers across the given groups, replacing any existing
// membership. Friend groups are placed first, largest first, each into the
// group with the most remaining capacity whose projected grade spread stays
// within the limit; ties break by lowest camper count, then display order.
// A friend group no group can hold without breaking the spread limit is
// split member by member. Oversize placement is permitted and flagged.
// The assignment is deterministic: identical input yields identical output.
func Solve(campers []Camper, friendGroups []FriendGroup, groups []Group, cfg Config) (*SolveResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := cloneGroups(groups)
	slices.SortFunc(out, func(a, b Group) int { return a.Number - b.Number })
	for i := range out {
		out[i].CamperIDs = nil
	}

	roster := NewRoster(campers)
	units := buildUnits(campers, friendGroups)

	for _, u := range units {
		target := bestFit(out, roster, u, cfg)
		if target >= 0 {
			place(&out[target], u.members)
			continue
		}

		// No group can take the whole unit within the grade spread: split it
		// member by member, least-violating group first. Singletons land in
		// the group with the smallest spread excess.
		for _, m := range u.members {
			single := unit{members: []Camper{m}}
			if t := bestFit(out, roster, single, cfg); t >= 0 {
				place(&out[t], single.members)
			} else {
				place(&out[leastViolating(out, roster, m, cfg)], single.members)
			}
		}
	}

	repairGradeSpread(out, roster, cfg)

	violations := Evaluate(out, roster, friendGroups, cfg)

	return &SolveResult{
		Groups:     out,
		Violations: violations,
		Stats:      buildSolveStats(out, friendGroups, violations),
	}, nil
}

// buildUnits partitions campers into friend-group units and singletons,
// ordered largest unit first so the hardest placements happen early.
// Ordering is deterministic: size descending, then friend-group number,
// then grade (unknown last), then athlete ID.
func buildUnits(campers []Camper, friendGroups []FriendGroup) []unit {
	roster := NewRoster(campers)
	grouped := make(map[uuid.UUID]bool)
	units := make([]unit, 0, len(campers))

	for _, fg := range friendGroups {
		var members []Camper
		for _, id := range fg.CamperIDs {
			if c, ok := roster[id]; ok {
				members = append(members, c)
				grouped[id] = true
			}
		}
		if len(members) == 0 {
			continue
		}
		fgID := fg.ID
		units = append(units, unit{friendGroupID: &fgID, members: members})
	}

	for _, c := range campers {
		if !grouped[c.AthleteID] {
			units = append(units, unit{members: []Camper{c}})
		}
	}

	slices.SortFunc(units, func(a, b unit) int {
		if n := len(b.members) - len(a.members); n != 0 {
			return n
		}
		if a.friendGroupID != nil && b.friendGroupID != nil {
			return *a.friendGroupID - *b.friendGroupID
		}
		if ga, gb := unitGrade(a), unitGrade(b); ga != gb {
			return ga - gb
		}
		return compareUUID(a.members[0].AthleteID, b.members[0].AthleteID)
	})

	return units
}

// unitGrade returns the lowest known grade in the unit, or a sentinel past
// the valid range when no member has one, so ungraded units sort last.
func unitGrade(u unit) int {
	grade := 99
	for _, m := range u.members {
		if m.Grade != nil && *m.Grade < grade {
			grade = *m.Grade
		}
	}
	return grade
}

// bestFit picks the index of the group that can hold the whole unit within
// the grade-spread limit, preferring the most remaining capacity, then the
// lowest camper count, then display order. Returns -1 when no group fits.
func bestFit(groups []Group, roster Roster, u unit, cfg Config) int {
	best := -1
	bestRemaining := 0

	for i, g := range groups {
		if projectedSpread(g, roster, u.members) > cfg.MaxGradeSpread {
			continue
		}
		remaining := cfg.MaxGroupSize - len(g.CamperIDs)
		if best < 0 || remaining > bestRemaining ||
			(remaining == bestRemaining && len(g.CamperIDs) < len(groups[best].CamperIDs)) {
			best = i
			bestRemaining = remaining
		}
	}

	return best
}

// leastViolating picks the group where adding the camper exceeds the grade
// spread the least, breaking ties by remaining capacity then display order.
func leastViolating(groups []Group, roster Roster, c Camper, cfg Config) int {
	best := 0
	bestExcess := -1
	bestRemaining := 0

	for i, g := range groups {
		excess := projectedSpread(g, roster, []Camper{c}) - cfg.MaxGradeSpread
		if excess < 0 {
			excess = 0
		}
		remaining := cfg.MaxGroupSize - len(g.CamperIDs)
		if bestExcess < 0 || excess < bestExcess ||
			(excess == bestExcess && remaining > bestRemaining) {
			best = i
			bestExcess = excess
			bestRemaining = remaining
		}
	}

	return best
}

// repairGradeSpread is the local-repair pass: singletons sitting at the
// grade extremes of an over-spread group are relocated to a group that can
// take them cleanly, without going over size or splitting a friend group.
// Runs to a fixpoint, bounded by the total camper count.
func repairGradeSpread(groups []Group, roster Roster, cfg Config) {
	limit := 0
	for _, g := range groups {
		limit += len(g.CamperIDs)
	}

	for range limit {
		if !repairOnce(groups, roster, cfg) {
			return
		}
	}
}

func repairOnce(groups []Group, roster Roster, cfg Config) bool {
	for i := range groups {
		stats := GroupStats(groups[i], roster, cfg)
		if !stats.GradeViolation {
			continue
		}

		for _, id := range groups[i].CamperIDs {
			c, ok := roster[id]
			if !ok || c.Grade == nil || c.FriendGroupID != nil {
				continue
			}
			if *c.Grade != *stats.MinGrade && *c.Grade != *stats.MaxGrade {
				continue
			}

			for j := range groups {
				if j == i || len(groups[j].CamperIDs) >= cfg.MaxGroupSize {
					continue
				}
				if projectedSpread(groups[j], roster, []Camper{c}) > cfg.MaxGradeSpread {
					continue
				}
				groups[i].CamperIDs = removeID(groups[i].CamperIDs, id)
				groups[j].CamperIDs = append(groups[j].CamperIDs, id)
				return true
			}
		}
	}
	return false
}

// projectedSpread computes the grade spread of the group as if the given
// campers were added. Campers without a validated grade are ignored.
func projectedSpread(g Group, roster Roster, adding []Camper) int {
	var lo, hi *int

	consider := func(grade *int) {
		if grade == nil {
			return
		}
		if lo == nil || *grade < *lo {
			v := *grade
			lo = &v
		}
		if hi == nil || *grade > *hi {
			v := *grade
			hi = &v
		}
	}

	for _, id := range g.CamperIDs {
		if c, ok := roster[id]; ok {
			consider(c.Grade)
		}
	}
	for _, c := range adding {
		consider(c.Grade)
	}

	if lo == nil || hi == nil {
		return 0
	}
	return *hi - *lo
}

func place(g *Group, members []Camper) {
	for _, m := range members {
		g.CamperIDs = append(g.CamperIDs, m.AthleteID)
	}
}

func buildSolveStats(groups []Group, friendGroups []FriendGroup, violations []Violation) SolveStats {
	stats := SolveStats{
		GroupCount:       len(groups),
		FriendGroupCount: len(friendGroups),
	}

	for _, g := range groups {
		stats.CamperCount += len(g.CamperIDs)
		if len(g.CamperIDs) > stats.LargestGroup {
			stats.LargestGroup = len(g.CamperIDs)
		}
	}
	for _, v := range violations {
		if v.Type == ViolationFriendSplit {
			stats.SplitFriendGroups++
		}
	}
	if len(groups) > 0 {
		stats.AverageGroupSize = float64(stats.CamperCount) / float64(len(groups))
	}

	return stats
}
