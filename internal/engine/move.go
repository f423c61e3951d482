package engine

import (
	"slices"

	"github.com/google/uuid"
)

// Move describes one camper reassignment. FromGroupID is nil when the camper
// is currently ungrouped; ToGroupID is nil to move the camper to ungrouped.
type Move struct {
	CamperID    uuid.UUID  `json:"camper_id"`
	FromGroupID *uuid.UUID `json:"from_group_id"`
	ToGroupID   *uuid.UUID `json:"to_group_id"`
}

// GroupProjection is the hypothetical post-move state of the target group.
type GroupProjection struct {
	CamperCount int `json:"camper_count"`
	GradeSpread int `json:"grade_spread"`
}

// MoveValidation reports whether a proposed move is clean. A move is allowed
// only when the hypothetical target state has no hard violation at all,
// regardless of the group's prior state; a friend-group split appears in
// Violations but never blocks.
type MoveValidation struct {
	Allowed       bool            `json:"allowed"`
	Violations    []ViolationType `json:"violations"`
	NewGroupState GroupProjection `json:"new_group_state"`
}

// ValidateMove evaluates a single proposed move against the current groups
// without mutating them. Only the moving camper's own friend group is checked
// for splits; scanning every friend group per hover is unnecessary since a
// move can only change cohesion for the mover's group.
func ValidateMove(
	move Move,
	groups []Group,
	roster Roster,
	friendGroups []FriendGroup,
	cfg Config,
) (*MoveValidation, error) {
	camper, ok := roster[move.CamperID]
	if !ok {
		return nil, ErrCamperNotFound
	}
	if move.ToGroupID == nil {
		// Moving to ungrouped never adds constraint pressure.
		return &MoveValidation{Allowed: true}, nil
	}

	to := findGroup(groups, *move.ToGroupID)
	if to == nil {
		return nil, ErrGroupNotFound
	}
	if move.FromGroupID != nil && findGroup(groups, *move.FromGroupID) == nil {
		return nil, ErrGroupNotFound
	}

	hypothetical := Group{CamperIDs: slices.Clone(to.CamperIDs)}
	hypothetical.CamperIDs = removeID(hypothetical.CamperIDs, move.CamperID)
	hypothetical.CamperIDs = append(hypothetical.CamperIDs, move.CamperID)

	spread := projectedSpread(Group{CamperIDs: removeID(slices.Clone(to.CamperIDs), move.CamperID)}, roster, []Camper{camper})

	v := &MoveValidation{
		Allowed: true,
		NewGroupState: GroupProjection{
			CamperCount: len(hypothetical.CamperIDs),
			GradeSpread: spread,
		},
	}

	if v.NewGroupState.CamperCount > cfg.MaxGroupSize {
		v.Violations = append(v.Violations, ViolationSizeExceeded)
		v.Allowed = false
	}
	if spread > cfg.MaxGradeSpread {
		v.Violations = append(v.Violations, ViolationGradeSpread)
		v.Allowed = false
	}

	if camper.FriendGroupID != nil {
		if fg := findFriendGroup(friendGroups, *camper.FriendGroupID); fg != nil {
			if movedSplitsFriends(move, *fg, groups) {
				v.Violations = append(v.Violations, ViolationFriendSplit)
			}
		}
	}

	return v, nil
}

// ApplyMoves commits moves against a copy of the groups and returns it.
// Each camper is removed from whichever group currently holds it before
// being appended to the target, preserving the one-group-per-camper
// invariant and camper conservation.
func ApplyMoves(groups []Group, moves []Move) ([]Group, error) {
	out := cloneGroups(groups)

	for _, m := range moves {
		if m.ToGroupID != nil && findGroup(out, *m.ToGroupID) == nil {
			return nil, ErrGroupNotFound
		}

		for i := range out {
			out[i].CamperIDs = removeID(out[i].CamperIDs, m.CamperID)
		}

		if m.ToGroupID != nil {
			for i := range out {
				if out[i].ID == *m.ToGroupID {
					out[i].CamperIDs = append(out[i].CamperIDs, m.CamperID)
				}
			}
		}
	}

	return out, nil
}

// movedSplitsFriends reports whether the mover's friend group would span
// more than one group once the move lands.
func movedSplitsFriends(move Move, fg FriendGroup, groups []Group) bool {
	location := make(map[uuid.UUID]uuid.UUID)
	for _, g := range groups {
		for _, id := range g.CamperIDs {
			location[id] = g.ID
		}
	}
	if move.ToGroupID != nil {
		location[move.CamperID] = *move.ToGroupID
	} else {
		delete(location, move.CamperID)
	}

	spanned := make(map[uuid.UUID]bool)
	for _, id := range fg.CamperIDs {
		if gid, ok := location[id]; ok {
			spanned[gid] = true
		}
	}
	return len(spanned) > 1
}

func findGroup(groups []Group, id uuid.UUID) *Group {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

func findFriendGroup(friendGroups []FriendGroup, id int) *FriendGroup {
	for i := range friendGroups {
		if friendGroups[i].ID == id {
			return &friendGroups[i]
		}
	}
	return nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(v uuid.UUID) bool { return v == id })
}
