package engine

import (
	"slices"

	"github.com/google/uuid"
)

// Group is one camp group bucket. Membership is defined by CamperIDs;
// a camper belongs to at most one group at a time.
type Group struct {
	ID        uuid.UUID   `json:"id"`
	Number    int         `json:"number"`
	Name      string      `json:"name"`
	Color     string      `json:"color"`
	CamperIDs []uuid.UUID `json:"camper_ids"`
}

// Stats holds derived per-group numbers and violation flags. MinGrade and
// MaxGrade are nil when no member has a validated grade.
type Stats struct {
	CamperCount     int  `json:"camper_count"`
	MinGrade        *int `json:"min_grade"`
	MaxGrade        *int `json:"max_grade"`
	GradeSpread     int  `json:"grade_spread"`
	SizeViolation   bool `json:"size_violation"`
	GradeViolation  bool `json:"grade_violation"`
	FriendViolation bool `json:"friend_violation"`
}

// GroupStats computes size and grade stats for a group against the roster.
// Friend flags are set separately by BuildStats since they span groups.
func GroupStats(g Group, roster Roster, cfg Config) Stats {
	s := Stats{CamperCount: len(g.CamperIDs)}

	for _, id := range g.CamperIDs {
		c, ok := roster[id]
		if !ok || c.Grade == nil {
			continue
		}
		if s.MinGrade == nil || *c.Grade < *s.MinGrade {
			grade := *c.Grade
			s.MinGrade = &grade
		}
		if s.MaxGrade == nil || *c.Grade > *s.MaxGrade {
			grade := *c.Grade
			s.MaxGrade = &grade
		}
	}

	if s.MinGrade != nil && s.MaxGrade != nil {
		s.GradeSpread = *s.MaxGrade - *s.MinGrade
	}

	s.SizeViolation = s.CamperCount > cfg.MaxGroupSize
	s.GradeViolation = s.GradeSpread > cfg.MaxGradeSpread
	return s
}

// BuildStats computes stats for every group, including the cross-group
// friend-split flag for groups holding part of a split friend group.
func BuildStats(groups []Group, roster Roster, friendGroups []FriendGroup, cfg Config) map[uuid.UUID]Stats {
	stats := make(map[uuid.UUID]Stats, len(groups))
	for _, g := range groups {
		stats[g.ID] = GroupStats(g, roster, cfg)
	}

	for _, fg := range friendGroups {
		spanned := groupsSpanned(fg, groups)
		if len(spanned) < 2 {
			continue
		}
		for _, gid := range spanned {
			s := stats[gid]
			s.FriendViolation = true
			stats[gid] = s
		}
	}

	return stats
}

// groupsSpanned returns the IDs of non-empty groups holding at least one
// member of the friend group, in display order.
func groupsSpanned(fg FriendGroup, groups []Group) []uuid.UUID {
	var spanned []uuid.UUID
	for _, g := range groups {
		for _, id := range g.CamperIDs {
			if slices.Contains(fg.CamperIDs, id) {
				spanned = append(spanned, g.ID)
				break
			}
		}
	}
	return spanned
}

// cloneGroups deep-copies a group slice so callers can mutate safely.
func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].CamperIDs = slices.Clone(g.CamperIDs)
	}
	return out
}
