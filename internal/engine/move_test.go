package engine_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
)

func moveState() ([]engine.Group, []engine.Camper) {
	groups := makeGroups(2)
	groups[0].CamperIDs = []uuid.UUID{camperID(1), camperID(2)}
	groups[1].CamperIDs = []uuid.UUID{camperID(3)}

	campers := []engine.Camper{
		makeCamper(1, 3),
		makeCamper(2, 3),
		makeCamper(3, 5),
	}
	return groups, campers
}

func TestValidateMoveAllowed(t *testing.T) {
	groups, campers := moveState()

	v, err := engine.ValidateMove(
		engine.Move{CamperID: camperID(2), FromGroupID: &groups[0].ID, ToGroupID: &groups[1].ID},
		groups, engine.NewRoster(campers), nil,
		engine.Config{MaxGroupSize: 15, MaxGradeSpread: 2, NumGroups: 2},
	)
	if err != nil {
		t.Fatalf("ValidateMove() error = %v", err)
	}

	if !v.Allowed {
		t.Errorf("Allowed = false, want true; violations = %v", v.Violations)
	}
	if v.NewGroupState.CamperCount != 2 {
		t.Errorf("CamperCount = %d, want 2", v.NewGroupState.CamperCount)
	}
	if v.NewGroupState.GradeSpread != 2 {
		t.Errorf("GradeSpread = %d, want 2", v.NewGroupState.GradeSpread)
	}
}

func TestValidateMoveBlockedByHardViolation(t *testing.T) {
	groups, campers := moveState()
	roster := engine.NewRoster(campers)

	t.Run("grade spread", func(t *testing.T) {
		// Grade 3 into a grade-5 group at spread 1 breaks the limit.
		v, err := engine.ValidateMove(
			engine.Move{CamperID: camperID(1), FromGroupID: &groups[0].ID, ToGroupID: &groups[1].ID},
			groups, roster, nil,
			engine.Config{MaxGroupSize: 15, MaxGradeSpread: 1, NumGroups: 2},
		)
		if err != nil {
			t.Fatalf("ValidateMove() error = %v", err)
		}
		if v.Allowed {
			t.Error("Allowed = true, want false")
		}
		if !slices.Contains(v.Violations, engine.ViolationGradeSpread) {
			t.Errorf("Violations = %v, want grade_spread_exceeded", v.Violations)
		}
	})

	t.Run("size", func(t *testing.T) {
		v, err := engine.ValidateMove(
			engine.Move{CamperID: camperID(3), FromGroupID: &groups[1].ID, ToGroupID: &groups[0].ID},
			groups, roster, nil,
			engine.Config{MaxGroupSize: 2, MaxGradeSpread: 5, NumGroups: 2},
		)
		if err != nil {
			t.Fatalf("ValidateMove() error = %v", err)
		}
		if v.Allowed {
			t.Error("Allowed = true, want false")
		}
		if !slices.Contains(v.Violations, engine.ViolationSizeExceeded) {
			t.Errorf("Violations = %v, want size_exceeded", v.Violations)
		}
	})
}

func TestValidateMoveFriendSplitWarnsButAllows(t *testing.T) {
	groups, campers := moveState()
	campers[0].FriendGroupID = ptr(1)
	campers[1].FriendGroupID = ptr(1)
	friendGroups := []engine.FriendGroup{
		{ID: 1, CamperIDs: []uuid.UUID{camperID(1), camperID(2)}},
	}

	v, err := engine.ValidateMove(
		engine.Move{CamperID: camperID(2), FromGroupID: &groups[0].ID, ToGroupID: &groups[1].ID},
		groups, engine.NewRoster(campers), friendGroups,
		engine.Config{MaxGroupSize: 15, MaxGradeSpread: 2, NumGroups: 2},
	)
	if err != nil {
		t.Fatalf("ValidateMove() error = %v", err)
	}

	if !slices.Contains(v.Violations, engine.ViolationFriendSplit) {
		t.Errorf("Violations = %v, want friend_group_split", v.Violations)
	}
	if !v.Allowed {
		t.Error("Allowed = false; a friend split is a warning and must not block")
	}
}

func TestValidateMovePure(t *testing.T) {
	groups, campers := moveState()
	roster := engine.NewRoster(campers)
	cfg := engine.Config{MaxGroupSize: 15, MaxGradeSpread: 2, NumGroups: 2}
	move := engine.Move{CamperID: camperID(2), FromGroupID: &groups[0].ID, ToGroupID: &groups[1].ID}

	before, _ := engine.ApplyMoves(groups, nil)

	first, err := engine.ValidateMove(move, groups, roster, nil, cfg)
	if err != nil {
		t.Fatalf("ValidateMove() error = %v", err)
	}
	second, err := engine.ValidateMove(move, groups, roster, nil, cfg)
	if err != nil {
		t.Fatalf("ValidateMove() error = %v", err)
	}

	if diff := cmp.Diff(before, groups); diff != "" {
		t.Errorf("ValidateMove mutated group state:\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated validation differs:\n%s", diff)
	}
}

func TestValidateMoveUnknownIDs(t *testing.T) {
	groups, campers := moveState()
	roster := engine.NewRoster(campers)
	cfg := testConfig()
	phantom := uuid.New()

	_, err := engine.ValidateMove(engine.Move{CamperID: phantom, ToGroupID: &groups[0].ID}, groups, roster, nil, cfg)
	if !errors.Is(err, engine.ErrCamperNotFound) {
		t.Errorf("error = %v, want ErrCamperNotFound", err)
	}

	_, err = engine.ValidateMove(engine.Move{CamperID: camperID(1), ToGroupID: &phantom}, groups, roster, nil, cfg)
	if !errors.Is(err, engine.ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}

func TestApplyMoves(t *testing.T) {
	groups, _ := moveState()

	moved, err := engine.ApplyMoves(groups, []engine.Move{
		{CamperID: camperID(1), FromGroupID: &groups[0].ID, ToGroupID: &groups[1].ID},
	})
	if err != nil {
		t.Fatalf("ApplyMoves() error = %v", err)
	}

	// Conservation: still three campers, camper 1 in exactly one group.
	if got := totalAssigned(moved); got != 3 {
		t.Errorf("assigned = %d, want 3", got)
	}
	if slices.Contains(moved[0].CamperIDs, camperID(1)) {
		t.Error("camper 1 still in source group")
	}
	if !slices.Contains(moved[1].CamperIDs, camperID(1)) {
		t.Error("camper 1 missing from target group")
	}

	// The input groups are untouched.
	if !slices.Contains(groups[0].CamperIDs, camperID(1)) {
		t.Error("ApplyMoves mutated its input")
	}
}

func TestApplyMovesToUngrouped(t *testing.T) {
	groups, _ := moveState()

	moved, err := engine.ApplyMoves(groups, []engine.Move{
		{CamperID: camperID(3), FromGroupID: &groups[1].ID, ToGroupID: nil},
	})
	if err != nil {
		t.Fatalf("ApplyMoves() error = %v", err)
	}

	if got := totalAssigned(moved); got != 2 {
		t.Errorf("assigned = %d, want 2 after moving one camper to ungrouped", got)
	}
}

func TestApplyMovesUnknownGroup(t *testing.T) {
	groups, _ := moveState()
	phantom := uuid.New()

	_, err := engine.ApplyMoves(groups, []engine.Move{
		{CamperID: camperID(1), ToGroupID: &phantom},
	})
	if !errors.Is(err, engine.ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}
