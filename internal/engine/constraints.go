package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ViolationType identifies the constraint that was breached.
type ViolationType string

// Violation types.
const (
	ViolationSizeExceeded ViolationType = "size_exceeded"
	ViolationGradeSpread  ViolationType = "grade_spread_exceeded"
	ViolationFriendSplit  ViolationType = "friend_group_split"
)

// Severity classifies a violation. Hard violations block finalization;
// warnings are surfaced but do not.
type Severity string

// Severity levels.
const (
	SeverityHard    Severity = "hard"
	SeverityWarning Severity = "warning"
)

// violationNamespace seeds content-derived violation IDs so that recomputing
// the same condition yields the same ID within a session.
var violationNamespace = uuid.MustParse("5b3c2d4e-9f1a-4c6b-8e7d-2a0f1b3c5d7e")

// Violation describes a single constraint breach. Violations are recomputed
// whenever group membership changes; Resolved and ResolutionNote are carried
// forward by key for conditions that persist unchanged.
type Violation struct {
	ID                  uuid.UUID     `json:"id"`
	Type                ViolationType `json:"violation_type"`
	Severity            Severity      `json:"severity"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	GroupID             *uuid.UUID    `json:"affected_group_id"`
	CamperIDs           []uuid.UUID   `json:"affected_camper_ids"`
	SuggestedResolution string        `json:"suggested_resolution"`
	Resolved            bool          `json:"resolved"`
	ResolutionNote      *string       `json:"resolution_note"`
	ResolvedAt          *time.Time    `json:"resolved_at"`
}

// Key returns the stable content-derived identity of the violation:
// type, affected group, and sorted affected campers. Two violations with
// the same key describe the same underlying condition.
func (v Violation) Key() string {
	group := "-"
	if v.GroupID != nil {
		group = v.GroupID.String()
	}

	ids := make([]string, len(v.CamperIDs))
	for i, id := range v.CamperIDs {
		ids[i] = id.String()
	}
	slices.Sort(ids)

	return string(v.Type) + "|" + group + "|" + strings.Join(ids, ",")
}

// Evaluate recomputes the full violation list for the current assignment.
// Size and grade-spread breaches are hard and reported per group; a split
// friend group is a warning reported once, spanning groups (nil group ID),
// with all members of the friend group affected.
func Evaluate(groups []Group, roster Roster, friendGroups []FriendGroup, cfg Config) []Violation {
	var violations []Violation

	for _, g := range groups {
		stats := GroupStats(g, roster, cfg)

		if stats.SizeViolation {
			violations = append(violations, newViolation(Violation{
				Type:     ViolationSizeExceeded,
				Severity: SeverityHard,
				Title:    fmt.Sprintf("%s over size limit", g.Name),
				Description: fmt.Sprintf(
					"%s has %d campers; the limit is %d.",
					g.Name, stats.CamperCount, cfg.MaxGroupSize,
				),
				GroupID:   ptrUUID(g.ID),
				CamperIDs: slices.Clone(g.CamperIDs),
				SuggestedResolution: fmt.Sprintf(
					"Move %d campers to a group with open capacity.",
					stats.CamperCount-cfg.MaxGroupSize,
				),
			}))
		}

		if stats.GradeViolation {
			violations = append(violations, newViolation(Violation{
				Type:     ViolationGradeSpread,
				Severity: SeverityHard,
				Title:    fmt.Sprintf("Grade spread too wide in %s", g.Name),
				Description: fmt.Sprintf(
					"%s spans grades %d through %d (spread %d); the limit is %d.",
					g.Name, *stats.MinGrade, *stats.MaxGrade, stats.GradeSpread, cfg.MaxGradeSpread,
				),
				GroupID:   ptrUUID(g.ID),
				CamperIDs: slices.Clone(g.CamperIDs),
				SuggestedResolution: "Move the youngest or oldest campers " +
					"into a group closer to their grade.",
			}))
		}
	}

	for _, fg := range friendGroups {
		spanned := groupsSpanned(fg, groups)
		if len(spanned) < 2 {
			continue
		}
		violations = append(violations, newViolation(Violation{
			Type:     ViolationFriendSplit,
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("Friend group %d is split", fg.ID),
			Description: fmt.Sprintf(
				"The %d campers in friend group %d are spread across %d groups.",
				len(fg.CamperIDs), fg.ID, len(spanned),
			),
			CamperIDs: slices.Clone(fg.CamperIDs),
			SuggestedResolution: "Consolidate the friend group into one group, " +
				"or accept the split with a note.",
		}))
	}

	return violations
}

// CarryForward copies resolution state from prior violations onto newly
// computed ones that describe the same unchanged condition, matched by Key.
// An accepted violation is never silently re-flagged by a recompute.
func CarryForward(next, prior []Violation) []Violation {
	resolved := make(map[string]Violation, len(prior))
	for _, v := range prior {
		if v.Resolved {
			resolved[v.Key()] = v
		}
	}

	out := slices.Clone(next)
	for i, v := range out {
		if p, ok := resolved[v.Key()]; ok {
			out[i].Resolved = true
			out[i].ResolutionNote = p.ResolutionNote
			out[i].ResolvedAt = p.ResolvedAt
		}
	}
	return out
}

// AcknowledgeFor marks unresolved violations involving any of the given
// campers as resolved with the supplied note. Committing a move despite a
// surfaced violation records the confirmation this way.
func AcknowledgeFor(violations []Violation, camperIDs []uuid.UUID, note string, at time.Time) []Violation {
	affected := make(map[uuid.UUID]bool, len(camperIDs))
	for _, id := range camperIDs {
		affected[id] = true
	}

	out := slices.Clone(violations)
	for i, v := range out {
		if v.Resolved {
			continue
		}
		for _, id := range v.CamperIDs {
			if affected[id] {
				n := note
				t := at
				out[i].Resolved = true
				out[i].ResolutionNote = &n
				out[i].ResolvedAt = &t
				break
			}
		}
	}
	return out
}

// UnresolvedHard returns the unresolved hard violations that block finalize.
func UnresolvedHard(violations []Violation) []Violation {
	var blocking []Violation
	for _, v := range violations {
		if v.Severity == SeverityHard && !v.Resolved {
			blocking = append(blocking, v)
		}
	}
	return blocking
}

// newViolation assigns the content-derived ID for a fully described violation.
func newViolation(v Violation) Violation {
	v.ID = uuid.NewSHA1(violationNamespace, []byte(v.Key()))
	return v
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}
